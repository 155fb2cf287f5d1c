// Package harness runs scripted address book sessions as conformance tests.
//
// A scenario seeds a book, feeds command lines to the interpreter on a fixed
// "today", checks each reply, round-trips the final book through the SQLite
// store and then evaluates assertions against what was read back.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: basic_session
//	description: "What this scenario validates"
//	today: "2024-01-01"
//	contacts:
//	  - name: Alice
//	    phones: ["111", "222"]
//	    birthday: "2000-06-15"
//	steps:
//	  - input: phone Alice
//	    expect:
//	      output: "Phone number for Alice: 111."
//	  - input: phone Bob
//	    expect:
//	      code: NOT_FOUND
//	assertions:
//	  - type: count
//	    count: 1
//	  - type: contact
//	    name: Alice
//	    phones: ["111", "222"]
//
// Unknown fields are rejected, so a misspelled key fails the load instead of
// silently disabling a check.
//
// # Assertion Types
//
//   - count: the book holds exactly Count contacts
//   - order: the book's names, in iteration order, equal Names
//   - contact: Name is stored; Phones and Birthday are compared when given
//   - absent: Name is not stored
//
// # Golden Files
//
// RunWithGolden renders the session transcript and the final canonical
// snapshot and compares them with testdata/golden/<name>.golden. Regenerate
// with:
//
//	go test ./internal/harness -update
package harness
