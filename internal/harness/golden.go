package harness

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/addressbook/internal/snapshot"
)

// RenderTranscript renders a scenario run for golden comparison: a header,
// each step as "> input" followed by an optional "! CODE" line and the
// reply, then the final snapshot in canonical JSON.
func RenderTranscript(s *Scenario, result *Result) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n", s.Name)
	fmt.Fprintf(&buf, "# today: %s\n", s.Today)

	for _, ex := range result.Transcript {
		fmt.Fprintf(&buf, "\n> %s\n", ex.Input)
		if ex.Code != "" {
			fmt.Fprintf(&buf, "! %s\n", ex.Code)
		}
		if ex.Output != "" {
			buf.WriteString(ex.Output)
			buf.WriteByte('\n')
		}
	}

	if result.Final != nil {
		data, err := snapshot.Encode(result.Final)
		if err != nil {
			return nil, err
		}
		buf.WriteString("\n# final snapshot\n")
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

// RunWithGolden executes a scenario and compares its transcript against a
// golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns the result so callers can also check Pass and Errors.
// Test failure (via goldie) occurs if the transcript doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	data, err := RenderTranscript(scenario, result)
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return result, nil
}
