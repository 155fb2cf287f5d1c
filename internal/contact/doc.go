// Package contact defines the validated field types and the Record of the
// address book.
//
// Fields validate on assignment: a Phone or Birthday value that exists has
// passed its rule, and a failed Set never changes the stored value. All
// failures are *Error values carrying a Code so callers can branch on the
// kind of failure without matching on text.
//
// This package imports nothing internal; addressbook, interp and the storage
// backends build on it.
package contact
