package contact

import (
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// validate checks phone and birthday values.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validation tags for Var checks.
const (
	phoneTag = "required,number"
	dateTag  = "datetime=" + DateLayout
)

// Validator checks a candidate field value. A nil Validator accepts anything.
type Validator func(value string) error

// Field holds one validated string value.
//
// Set runs the validator before committing, so a Field never holds a value
// its validator rejects and a failed Set leaves the previous value in place.
type Field struct {
	value    string
	validate Validator
}

// Value returns the current value.
func (f Field) Value() string {
	return f.value
}

// String implements fmt.Stringer.
func (f Field) String() string {
	return f.value
}

// Set validates value and stores it.
func (f *Field) Set(value string) error {
	if f.validate != nil {
		if err := f.validate(value); err != nil {
			return err
		}
	}
	f.value = value
	return nil
}

// Name is the unconstrained contact name field.
type Name struct {
	Field
}

// NewName creates a Name. Any value is accepted, including "".
func NewName(value string) Name {
	return Name{Field{value: value}}
}

// ValidateName rejects names that are not valid UTF-8. Such names cannot be
// written to a snapshot and read back unchanged.
func ValidateName(value string) error {
	if !utf8.ValidString(value) {
		return &Error{Code: CodeInvalidName, Message: "name must be valid UTF-8", Value: value}
	}
	return nil
}

// Phone is a phone number made of ASCII decimal digits only.
type Phone struct {
	Field
}

// NewPhone creates a Phone or fails with CodeInvalidPhone.
func NewPhone(value string) (Phone, error) {
	var p Phone
	if err := p.Set(value); err != nil {
		return Phone{}, err
	}
	return p, nil
}

// Set validates and stores a phone value.
func (p *Phone) Set(value string) error {
	p.validate = validatePhone
	return p.Field.Set(value)
}

func validatePhone(value string) error {
	if err := validate.Var(value, phoneTag); err != nil {
		return &Error{Code: CodeInvalidPhone, Message: "phone must contain digits only", Value: value, Err: err}
	}
	return nil
}

// DateLayout is the only accepted birthday format.
const DateLayout = "2006-01-02"

// Birthday is a date field. Year, month and day are set together by a
// successful Set and cleared together by Set("").
type Birthday struct {
	Field
	year  int
	month time.Month
	day   int
}

// NewBirthday parses an ISO YYYY-MM-DD date or fails with CodeInvalidDate.
// The empty string yields an unset Birthday.
func NewBirthday(value string) (Birthday, error) {
	var b Birthday
	if err := b.Set(value); err != nil {
		return Birthday{}, err
	}
	return b, nil
}

// Set parses value and commits the string and its components atomically.
func (b *Birthday) Set(value string) error {
	if value == "" {
		*b = Birthday{}
		return nil
	}
	t, err := parseDate(value)
	if err != nil {
		return err
	}
	b.Field = Field{value: value}
	b.year, b.month, b.day = t.Date()
	return nil
}

func parseDate(value string) (time.Time, error) {
	if err := validate.Var(value, dateTag); err != nil {
		return time.Time{}, &Error{Code: CodeInvalidDate, Message: "date must be YYYY-MM-DD", Value: value, Err: err}
	}
	// Already validated; parsing only extracts the components.
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, &Error{Code: CodeInvalidDate, Message: "date must be YYYY-MM-DD", Value: value, Err: err}
	}
	return t, nil
}

// IsSet reports whether the birthday holds a date.
func (b Birthday) IsSet() bool {
	return b.value != ""
}

// Year returns the year component, or 0 when unset.
func (b Birthday) Year() int { return b.year }

// Month returns the month component, or 0 when unset.
func (b Birthday) Month() time.Month { return b.month }

// Day returns the day component, or 0 when unset.
func (b Birthday) Day() int { return b.day }
