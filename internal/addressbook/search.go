package addressbook

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/addressbook/internal/contact"
)

// SearchField names a record field that criteria can match against.
type SearchField int

const (
	// FieldUnknown never matches.
	FieldUnknown SearchField = iota
	FieldName
	FieldPhone
	FieldBirthday
)

// ParseSearchField maps a criteria key to a SearchField. Keys are
// case-insensitive; unsupported keys map to FieldUnknown.
func ParseSearchField(key string) SearchField {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "name":
		return FieldName
	case "phone", "phones":
		return FieldPhone
	case "birthday":
		return FieldBirthday
	default:
		return FieldUnknown
	}
}

// String returns the criteria key of the field.
func (f SearchField) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldPhone:
		return "phone"
	case FieldBirthday:
		return "birthday"
	default:
		return "unknown"
	}
}

// values returns the strings of r that f matches against.
func (f SearchField) values(r *contact.Record) []string {
	switch f {
	case FieldName:
		return []string{r.Name()}
	case FieldPhone:
		return r.Phones()
	case FieldBirthday:
		if v := r.BirthdayValue(); v != "" {
			return []string{v}
		}
		return nil
	default:
		return nil
	}
}

// Criteria maps a field key ("name", "phone", "birthday") to a prefix.
type Criteria map[string]string

type criterion struct {
	field  SearchField
	prefix string
}

// compile resolves keys and folds prefixes once per search.
func (c Criteria) compile() []criterion {
	fold := cases.Fold()
	out := make([]criterion, 0, len(c))
	for key, value := range c {
		field := ParseSearchField(key)
		if field == FieldUnknown {
			continue
		}
		out = append(out, criterion{field: field, prefix: foldString(fold, value)})
	}
	return out
}

func foldString(fold cases.Caser, s string) string {
	return fold.String(norm.NFC.String(s))
}

// Search returns, in iteration order, every record for which at least one
// criterion matches: the criterion's field value, case-folded, starts with the
// case-folded prefix. A phone criterion matches if any of the record's phones
// does. Unknown field keys never match, so empty or all-unknown criteria
// return no records.
func (b *Book) Search(criteria Criteria) []*contact.Record {
	compiled := criteria.compile()
	out := []*contact.Record{}
	if len(compiled) == 0 {
		return out
	}

	fold := cases.Fold()
	for _, name := range b.order {
		r := b.records[name]
		if matchAny(fold, r, compiled) {
			out = append(out, r)
		}
	}
	return out
}

func matchAny(fold cases.Caser, r *contact.Record, criteria []criterion) bool {
	for _, c := range criteria {
		for _, v := range c.field.values(r) {
			if strings.HasPrefix(foldString(fold, v), c.prefix) {
				return true
			}
		}
	}
	return false
}
