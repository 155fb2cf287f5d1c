package interp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/addressbook/internal/addressbook"
	"github.com/roach88/addressbook/internal/contact"
)

// DaysView is the structured result of "days to birthday". Days is nil when
// the contact has no birthday.
type DaysView struct {
	Name string `json:"name"`
	Days *int   `json:"days"`
}

func quit(*Interpreter, []string, string) Result {
	return Result{Output: "Good bye!", Quit: true}
}

func hello(*Interpreter, []string, string) Result {
	return ok("How can I help you?", nil)
}

func add(in *Interpreter, args []string, _ string) Result {
	name, phone := args[0], args[1]
	birthday := ""
	if len(args) == 3 {
		birthday = args[2]
	}

	r, err := in.book.Add(name, phone, birthday)
	if err != nil {
		return fail(err)
	}

	msg := fmt.Sprintf("Contact %s added with phone %s and no birthday.", name, phone)
	if birthday != "" {
		msg = fmt.Sprintf("Contact %s added with phone %s and birthday %s.", name, phone, birthday)
	}
	res := ok(msg, viewOf(r))
	res.Mutated = true
	return res
}

func change(in *Interpreter, args []string, _ string) Result {
	name, phone, birthday := args[0], args[1], args[2]

	r, err := in.book.Change(name, phone, birthday)
	if err != nil {
		return fail(err)
	}

	res := ok(fmt.Sprintf("Contact %s changed to phone %s and birthday %s.", name, phone, birthday), viewOf(r))
	res.Mutated = true
	return res
}

func phone(in *Interpreter, args []string, _ string) Result {
	r, err := in.book.Get(args[0])
	if err != nil {
		return fail(err)
	}
	return ok(fmt.Sprintf("Phone number for %s: %s.", r.Name(), r.FirstPhone()), viewOf(r))
}

func daysToBirthday(in *Interpreter, args []string, _ string) Result {
	r, err := in.book.Get(args[0])
	if err != nil {
		return fail(err)
	}

	days, set := r.DaysToBirthday(in.clock.Now())
	if !set {
		return ok(fmt.Sprintf("Contact %s has no birthday set.", r.Name()), DaysView{Name: r.Name()})
	}
	return ok(fmt.Sprintf("Days until %s's birthday: %d.", r.Name(), days), DaysView{Name: r.Name(), Days: &days})
}

func showAll(in *Interpreter, _ []string, _ string) Result {
	views := viewsOf(in.book.All())
	if len(views) == 0 {
		return ok("No contacts saved.", views)
	}
	return ok(formatViews(views), views)
}

func showN(in *Interpreter, args []string, _ string) Result {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fail(&contact.Error{Code: CodeInvalidArguments, Message: "invalid arguments", Value: "show n records <n>", Err: err})
	}

	records, err := in.book.FirstN(n)
	if err != nil {
		return fail(err)
	}
	views := viewsOf(records)
	if len(views) == 0 {
		return ok("No records to show.", views)
	}
	return ok(formatViews(views), views)
}

func search(in *Interpreter, _ []string, rest string) Result {
	criteria, err := parseCriteria(rest)
	if err != nil {
		return fail(err)
	}

	views := viewsOf(in.book.Search(criteria))
	if len(views) == 0 {
		return ok("No matching contacts.", views)
	}
	return ok("Found contacts:\n"+formatViews(views), views)
}

// parseCriteria splits "name=al.phone=48" into clauses on "." and each clause
// into key and value on the first "=". Keys and values are trimmed.
func parseCriteria(s string) (addressbook.Criteria, error) {
	criteria := addressbook.Criteria{}
	for _, clause := range strings.Split(s, ".") {
		key, value, found := strings.Cut(clause, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, &contact.Error{
				Code:    CodeInvalidArguments,
				Message: "invalid arguments",
				Value:   "search <field>=<value>[.<field>=<value>...]",
			}
		}
		criteria[key] = strings.TrimSpace(value)
	}
	return criteria, nil
}

func addPhone(in *Interpreter, args []string, _ string) Result {
	name, number := args[0], args[1]
	r, err := in.book.Get(name)
	if err != nil {
		return fail(err)
	}
	if err := r.AddPhone(number); err != nil {
		return fail(err)
	}

	res := ok(fmt.Sprintf("Phone %s added to %s.", number, name), viewOf(r))
	res.Mutated = true
	return res
}

func removePhone(in *Interpreter, args []string, _ string) Result {
	name, number := args[0], args[1]
	r, err := in.book.Get(name)
	if err != nil {
		return fail(err)
	}

	before := len(r.Phones())
	if err := r.RemovePhone(number); err != nil {
		return fail(err)
	}
	if len(r.Phones()) == before {
		return ok(fmt.Sprintf("Contact %s has no phone %s. Nothing changed.", name, number), viewOf(r))
	}

	res := ok(fmt.Sprintf("Phone %s removed from %s.", number, name), viewOf(r))
	res.Mutated = true
	return res
}

func editPhone(in *Interpreter, args []string, _ string) Result {
	name, oldNumber, newNumber := args[0], args[1], args[2]
	r, err := in.book.Get(name)
	if err != nil {
		return fail(err)
	}

	had := hasPhone(r, oldNumber)
	if err := r.EditPhone(oldNumber, newNumber); err != nil {
		return fail(err)
	}
	if !had {
		return ok(fmt.Sprintf("Contact %s has no phone %s. Nothing changed.", name, oldNumber), viewOf(r))
	}

	res := ok(fmt.Sprintf("Phone %s of %s changed to %s.", oldNumber, name, newNumber), viewOf(r))
	res.Mutated = true
	return res
}

func deleteContact(in *Interpreter, args []string, _ string) Result {
	name := args[0]
	if !in.book.Remove(name) {
		return ok(fmt.Sprintf("Contact %s is not saved. Nothing deleted.", name), nil)
	}
	res := ok(fmt.Sprintf("Contact %s deleted.", name), nil)
	res.Mutated = true
	return res
}

func hasPhone(r *contact.Record, number string) bool {
	for _, p := range r.Phones() {
		if p == number {
			return true
		}
	}
	return false
}
