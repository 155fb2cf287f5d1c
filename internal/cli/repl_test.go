package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/addressbook/internal/snapshot"
)

func readSaved(t *testing.T, path string) *snapshot.Snapshot {
	t.Helper()
	snap, err := snapshot.NewFile(path).Read(context.Background())
	require.NoError(t, err)
	return snap
}

func TestREPL_SessionSavesOnExit(t *testing.T) {
	path := bookPath(t, "book.json")
	stdin := strings.NewReader("add Alice 111 2000-06-15\nphone Alice\ndays to birthday Alice\nexit\nhello\n")
	tc := newTestCLI(t, nil, stdin, "--book", path)

	require.Equal(t, ExitSuccess, tc.run(), tc.stderr.String())

	out := tc.stdout.String()
	assert.Contains(t, out, "No saved address book found. Starting with an empty one.")
	assert.Contains(t, out, "> Contact Alice added with phone 111 and birthday 2000-06-15.")
	assert.Contains(t, out, "> Phone number for Alice: 111.")
	assert.Contains(t, out, "> Days until Alice's birthday: 166.")
	assert.Contains(t, out, "> Good bye!")
	assert.NotContains(t, out, "How can I help you?", "input after exit is not read")

	snap := readSaved(t, path)
	assert.Equal(t, "snap-1", snap.ID)
	assert.Equal(t, []snapshot.Entry{{Name: "Alice", Phones: []string{"111"}, Birthday: "2000-06-15"}}, snap.Contacts)
}

func TestREPL_EndOfInputSaves(t *testing.T) {
	path := bookPath(t, "book.json")
	tc := newTestCLI(t, nil, strings.NewReader("add Bob 222"), "--book", path)

	require.Equal(t, ExitSuccess, tc.run())
	snap := readSaved(t, path)
	require.Len(t, snap.Contacts, 1)
	assert.Equal(t, "Bob", snap.Contacts[0].Name)
}

func TestREPL_ResumesSavedBook(t *testing.T) {
	path := bookPath(t, "book.json")

	first := newTestCLI(t, nil, strings.NewReader("add Alice 111\nadd Bob 222\nclose\n"), "--book", path)
	require.Equal(t, ExitSuccess, first.run())

	second := newTestCLI(t, nil, strings.NewReader("show all\ngood bye\n"), "--book", path)
	require.Equal(t, ExitSuccess, second.run())

	out := second.stdout.String()
	assert.NotContains(t, out, "No saved address book found")
	assert.Contains(t, out, "Alice: 111, Birthday: none\nBob: 222, Birthday: none")
}

func TestREPL_ErrorsDoNotEndSession(t *testing.T) {
	path := bookPath(t, "book.json")
	stdin := strings.NewReader("phone Nobody\nadd Alice 12x\nfly\nadd Alice 111\nexit\n")
	tc := newTestCLI(t, nil, stdin, "--book", path)

	require.Equal(t, ExitSuccess, tc.run())

	out := tc.stdout.String()
	assert.Contains(t, out, "Contact Nobody not found.")
	assert.Contains(t, out, `Invalid phone number "12x": use digits only.`)
	assert.Contains(t, out, "Unrecognized command. Try again.")
	assert.Len(t, readSaved(t, path).Contacts, 1)
}

func TestREPL_CorruptBookIsNotOverwritten(t *testing.T) {
	path := bookPath(t, "book.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))

	tc := newTestCLI(t, nil, strings.NewReader("add Alice 111\nexit\n"), "--book", path)

	assert.Equal(t, ExitCommandError, tc.run())
	assert.Contains(t, tc.stdout.String(), "Error [E004]")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "not json", string(data))
}

func TestREPL_JSONFormat(t *testing.T) {
	path := bookPath(t, "book.json")
	stdin := strings.NewReader("add Alice 111\nphone Nobody\n\nexit\n")
	tc := newTestCLI(t, nil, stdin, "--format", "json", "--book", path)

	require.Equal(t, ExitSuccess, tc.run())

	var responses []CLIResponse
	scanner := bufio.NewScanner(strings.NewReader(tc.stdout.String()))
	for scanner.Scan() {
		var resp CLIResponse
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &resp), scanner.Text())
		responses = append(responses, resp)
	}

	// one response per line, the blank line included
	require.Len(t, responses, 4)
	assert.Equal(t, "ok", responses[0].Status)
	assert.Equal(t, map[string]any{"name": "Alice", "phones": []any{"111"}}, responses[0].Data)
	assert.Equal(t, "error", responses[1].Status)
	assert.Equal(t, "NOT_FOUND", responses[1].Error.Code)
	assert.Equal(t, "ok", responses[2].Status)
	assert.Equal(t, "Good bye!", responses[3].Message)
}

func TestREPL_CancelledContextSaves(t *testing.T) {
	path := bookPath(t, "book.json")

	// stdin that delivers one command and then blocks forever
	r, w := io.Pipe()
	t.Cleanup(func() { _ = w.Close() })
	go func() {
		_, _ = w.Write([]byte("add Alice 111\n"))
	}()

	tc := newTestCLI(t, nil, r, "--book", path)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan int, 1)
	go func() {
		tc.cmd.SetContext(ctx)
		done <- tc.run()
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(tc.stdout.String(), "Contact Alice added")
	}, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case code := <-done:
		assert.Equal(t, ExitSuccess, code)
	case <-time.After(2 * time.Second):
		t.Fatal("session did not stop after cancellation")
	}
	assert.Len(t, readSaved(t, path).Contacts, 1)
}
