package contact

import (
	"errors"
	"fmt"
)

// Code categorizes address book errors.
//
// Callers pick user-facing messages by Code rather than by error text, so the
// message table lives with the interpreter and the codes live here.
type Code string

const (
	// CodeInvalidPhone indicates a phone value that is empty or has a non-digit.
	CodeInvalidPhone Code = "INVALID_PHONE_FORMAT"

	// CodeInvalidDate indicates a birthday that is not a calendar-valid YYYY-MM-DD.
	CodeInvalidDate Code = "INVALID_DATE_FORMAT"

	// CodeNotFound indicates a contact name that is not in the book.
	CodeNotFound Code = "NOT_FOUND"

	// CodeInsufficientRecords indicates a request for more records than stored.
	CodeInsufficientRecords Code = "INSUFFICIENT_RECORDS"

	// CodePersistence indicates an I/O or decoding failure on save or load.
	CodePersistence Code = "PERSISTENCE"

	// CodeNoSnapshot indicates that load found nothing to read.
	// It is not fatal: the book simply starts empty.
	CodeNoSnapshot Code = "NO_SNAPSHOT"

	// CodeLastPhone indicates an attempt to remove a record's only phone.
	CodeLastPhone Code = "LAST_PHONE"

	// CodeInvalidName indicates a name that is not valid UTF-8.
	CodeInvalidName Code = "INVALID_NAME"
)

// Error is the single error type of the address book core.
type Error struct {
	// Code identifies the error category.
	Code Code

	// Message is a human-readable description.
	Message string

	// Value is the offending input (phone, date, contact name, count).
	Value string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Value != "" {
		msg = fmt.Sprintf("%s (%q)", msg, e.Value)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf returns the Code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsValidation reports whether err is a field validation failure.
func IsValidation(err error) bool {
	switch CodeOf(err) {
	case CodeInvalidPhone, CodeInvalidDate, CodeInvalidName:
		return true
	}
	return false
}

// IsNotFound reports whether err is a missing-contact error.
func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}

// NewNotFoundError creates an Error for a contact name that is not stored.
func NewNotFoundError(name string) *Error {
	return &Error{Code: CodeNotFound, Message: "contact not found", Value: name}
}

// NewInsufficientRecordsError creates an Error for FirstN requests beyond the
// number of stored records.
func NewInsufficientRecordsError(requested, available int) *Error {
	return &Error{
		Code:    CodeInsufficientRecords,
		Message: fmt.Sprintf("requested %d records, %d available", requested, available),
		Value:   fmt.Sprintf("%d", requested),
	}
}

// NewPersistenceError wraps an I/O or decode failure.
func NewPersistenceError(op string, err error) *Error {
	return &Error{Code: CodePersistence, Message: op + " failed", Err: err}
}
