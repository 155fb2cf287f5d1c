package harness

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// dateLayout is the format of Scenario.Today.
const dateLayout = "2006-01-02"

// Scenario defines a scripted address book session.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file
	// and the final snapshot's ID.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Today is the YYYY-MM-DD date the session runs on.
	Today string `yaml:"today"`

	// Contacts seed the book before the first step. Seeding must succeed.
	Contacts []ContactSeed `yaml:"contacts,omitempty"`

	// Steps are command lines executed in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the book after it has been saved and reloaded.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// ContactSeed is one contact stored before the session starts.
type ContactSeed struct {
	Name     string   `yaml:"name"`
	Phones   []string `yaml:"phones"`
	Birthday string   `yaml:"birthday,omitempty"`
}

// Step is one command line with an optional expectation.
type Step struct {
	Input  string  `yaml:"input"`
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect specifies what a step must reply. Only the fields that are set are
// checked.
type Expect struct {
	// Output must equal the reply exactly.
	Output string `yaml:"output,omitempty"`

	// Contains must appear somewhere in the reply.
	Contains string `yaml:"contains,omitempty"`

	// Code is the expected error code. "OK" requires success.
	Code string `yaml:"code,omitempty"`

	// Quit requires the step to end the session.
	Quit bool `yaml:"quit,omitempty"`
}

// CodeOK in Expect.Code requires a step to succeed.
const CodeOK = "OK"

// Assertion validates the reloaded book.
type Assertion struct {
	// Type is one of count, order, contact or absent.
	Type string `yaml:"type"`

	// Name is the contact name (contact, absent).
	Name string `yaml:"name,omitempty"`

	// Phones are the expected phones in order (contact, optional).
	Phones []string `yaml:"phones,omitempty"`

	// Birthday is the expected birthday; "" requires none (contact, optional).
	Birthday *string `yaml:"birthday,omitempty"`

	// Count is the expected number of contacts (count).
	Count *int `yaml:"count,omitempty"`

	// Names is the expected iteration order (order).
	Names []string `yaml:"names,omitempty"`
}

// Assertion type constants.
const (
	AssertCount   = "count"
	AssertOrder   = "order"
	AssertContact = "contact"
	AssertAbsent  = "absent"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if _, err := time.Parse(dateLayout, s.Today); err != nil {
		return fmt.Errorf("today must be YYYY-MM-DD, got %q", s.Today)
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, c := range s.Contacts {
		if c.Name == "" {
			return fmt.Errorf("contacts[%d]: name is required", i)
		}
		if len(c.Phones) == 0 {
			return fmt.Errorf("contacts[%d]: at least one phone is required", i)
		}
	}

	for i, step := range s.Steps {
		if step.Input == "" {
			return fmt.Errorf("steps[%d]: input is required", i)
		}
		if e := step.Expect; e != nil && *e == (Expect{}) {
			return fmt.Errorf("steps[%d].expect: at least one of output, contains, code or quit is required", i)
		}
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertCount:
		if a.Count == nil {
			return fmt.Errorf("assertions[%d]: count requires count", index)
		}
	case AssertOrder:
		if a.Names == nil {
			return fmt.Errorf("assertions[%d]: order requires names", index)
		}
	case AssertContact, AssertAbsent:
		if a.Name == "" {
			return fmt.Errorf("assertions[%d]: %s requires name", index, a.Type)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown type %q", index, a.Type)
	}
	return nil
}
