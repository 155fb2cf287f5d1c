package contact

import (
	"time"
)

// Record is one contact: a name, at least one phone and an optional birthday.
//
// The name is fixed at construction. A record stored in a Book is keyed by
// that name, so renaming means building a new Record and replacing the entry.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday
}

// NewRecord builds a Record from raw values.
//
// Construction is all-or-nothing: if the name, the phone or the birthday
// fails validation, no Record is returned. An empty birthday means "no
// birthday".
func NewRecord(name, phone, birthday string) (*Record, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	p, err := NewPhone(phone)
	if err != nil {
		return nil, err
	}

	r := &Record{
		name:   NewName(name),
		phones: []Phone{p},
	}

	if birthday != "" {
		b, err := NewBirthday(birthday)
		if err != nil {
			return nil, err
		}
		r.birthday = &b
	}

	return r, nil
}

// Name returns the contact name.
func (r *Record) Name() string {
	return r.name.Value()
}

// Phones returns the phone numbers in order.
func (r *Record) Phones() []string {
	out := make([]string, len(r.phones))
	for i, p := range r.phones {
		out[i] = p.Value()
	}
	return out
}

// FirstPhone returns the primary (first) phone number.
func (r *Record) FirstPhone() string {
	return r.phones[0].Value()
}

// Birthday returns the birthday and whether one is set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// BirthdayValue returns the birthday as YYYY-MM-DD, or "" when unset.
func (r *Record) BirthdayValue() string {
	if r.birthday == nil {
		return ""
	}
	return r.birthday.Value()
}

// AddPhone validates phone and appends it.
// On validation failure the record is unchanged and the error is returned.
func (r *Record) AddPhone(phone string) error {
	p, err := NewPhone(phone)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone removes the first phone equal to phone. Absent phones are a no-op.
// Removing the only remaining phone fails with CodeLastPhone.
func (r *Record) RemovePhone(phone string) error {
	i := r.indexOf(phone)
	if i < 0 {
		return nil
	}
	if len(r.phones) == 1 {
		return &Error{Code: CodeLastPhone, Message: "a contact needs at least one phone", Value: phone}
	}
	r.phones = append(r.phones[:i], r.phones[i+1:]...)
	return nil
}

// EditPhone replaces the first phone equal to oldPhone with newPhone, keeping
// its position. newPhone is validated first; an absent oldPhone is a no-op.
func (r *Record) EditPhone(oldPhone, newPhone string) error {
	p, err := NewPhone(newPhone)
	if err != nil {
		return err
	}
	if i := r.indexOf(oldPhone); i >= 0 {
		r.phones[i] = p
	}
	return nil
}

func (r *Record) indexOf(phone string) int {
	for i, p := range r.phones {
		if p.Value() == phone {
			return i
		}
	}
	return -1
}

// DaysToBirthday returns the number of whole days from today's date to the
// next occurrence of the birthday's month and day, and false when no birthday
// is set. A birthday falling on today returns 0.
//
// February 29 birthdays only occur in leap years; the next occurrence is the
// next leap year's February 29.
func (r *Record) DaysToBirthday(today time.Time) (int, bool) {
	if r.birthday == nil || !r.birthday.IsSet() {
		return 0, false
	}
	return DaysUntil(today, r.birthday.Month(), r.birthday.Day()), true
}

// DaysUntil returns the days from today's calendar date to the next
// month/day occurrence on or after it. Time of day and location of today are
// ignored beyond selecting its calendar date.
func DaysUntil(today time.Time, month time.Month, day int) int {
	y, m, d := today.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	next := nextOccurrence(y, month, day)
	if next.Before(start) {
		next = nextOccurrence(y+1, month, day)
	}
	return int(next.Sub(start).Hours() / 24)
}

// nextOccurrence returns month/day in year, or in the first later year where
// that date exists.
func nextOccurrence(year int, month time.Month, day int) time.Time {
	if month == time.February && day == 29 {
		for !isLeap(year) {
			year++
		}
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
