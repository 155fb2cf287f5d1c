package cli

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/addressbook/internal/config"
	"github.com/roach88/addressbook/internal/store"
)

func TestExec_AddThenQuery(t *testing.T) {
	path := bookPath(t, "book.json")

	add := newTestCLI(t, nil, nil, "--book", path, "exec", "add", "Alice", "111", "2000-06-15")
	require.Equal(t, ExitSuccess, add.run(), add.stderr.String())
	assert.Equal(t, "Contact Alice added with phone 111 and birthday 2000-06-15.\n", add.stdout.String())

	query := newTestCLI(t, nil, nil, "--book", path, "exec", "days", "to", "birthday", "Alice")
	require.Equal(t, ExitSuccess, query.run())
	assert.Equal(t, "Days until Alice's birthday: 166.\n", query.stdout.String())
}

func TestExec_FailureExitCode(t *testing.T) {
	tc := newTestCLI(t, nil, nil, "--book", bookPath(t, "book.json"), "exec", "phone", "Nobody")

	assert.Equal(t, ExitFailure, tc.run())
	assert.Equal(t, "Contact Nobody not found.\n", tc.stdout.String())
	assert.NotContains(t, tc.stderr.String(), "Error:", "interpreter failures are reported once")
}

func TestExec_ReadOnlyCommandDoesNotSave(t *testing.T) {
	path := bookPath(t, "book.json")
	tc := newTestCLI(t, nil, nil, "--book", path, "exec", "show", "all")

	require.Equal(t, ExitSuccess, tc.run())
	assert.Equal(t, "No contacts saved.\n", tc.stdout.String())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestExec_InvalidInputDoesNotSave(t *testing.T) {
	path := bookPath(t, "book.json")
	tc := newTestCLI(t, nil, nil, "--book", path, "exec", "add", "Alice", "abc")

	assert.Equal(t, ExitFailure, tc.run())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestExec_RequiresCommand(t *testing.T) {
	tc := newTestCLI(t, nil, nil, "--book", bookPath(t, "book.json"), "exec")
	assert.Equal(t, ExitCommandError, tc.run())
}

func TestExec_SQLiteBackend(t *testing.T) {
	path := bookPath(t, "book.db")

	tc := newTestCLI(t, nil, nil, "--book", path, "exec", "add", "Alice", "111")
	require.Equal(t, ExitSuccess, tc.run(), tc.stdout.String())

	snap, err := store.NewBackend(path).Read(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Contacts, 1)
	assert.Equal(t, "Alice", snap.Contacts[0].Name)
}

func TestExec_BackendFlagOverridesExtension(t *testing.T) {
	path := bookPath(t, "book.db")

	tc := newTestCLI(t, nil, nil, "--book", path, "--backend", "json", "exec", "add", "Alice", "111")
	require.Equal(t, ExitSuccess, tc.run())

	assert.Len(t, readSaved(t, path).Contacts, 1)
}

func TestExec_EnvironmentSelectsBook(t *testing.T) {
	path := bookPath(t, "from-env.json")
	env := map[string]string{config.EnvPath: path}

	tc := newTestCLI(t, env, nil, "exec", "add", "Alice", "111")
	require.Equal(t, ExitSuccess, tc.run())

	assert.Len(t, readSaved(t, path).Contacts, 1)
}

func TestExec_ConfigFile(t *testing.T) {
	path := bookPath(t, "configured.json")
	cfgPath := bookPath(t, "addressbook.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("book:\n  path: "+path+"\n"), 0600))

	tc := newTestCLI(t, nil, nil, "--config", cfgPath, "exec", "add", "Alice", "111")
	require.Equal(t, ExitSuccess, tc.run(), tc.stdout.String())

	assert.Len(t, readSaved(t, path).Contacts, 1)
}

func TestExec_JSONOutput(t *testing.T) {
	path := bookPath(t, "book.json")
	require.Equal(t, ExitSuccess, newTestCLI(t, nil, nil, "--book", path, "exec", "add", "Alice", "111", "2000-06-15").run())

	tc := newTestCLI(t, nil, nil, "--format", "json", "--book", path, "exec", "show", "all")
	require.Equal(t, ExitSuccess, tc.run())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(tc.stdout.String()), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, []any{
		map[string]any{"name": "Alice", "phones": []any{"111"}, "birthday": "2000-06-15"},
	}, resp.Data)
}

func TestExec_JSONError(t *testing.T) {
	tc := newTestCLI(t, nil, nil, "--format", "json", "--book", bookPath(t, "book.json"), "exec", "show", "n", "records", "3")

	assert.Equal(t, ExitFailure, tc.run())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(tc.stdout.String()), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "INSUFFICIENT_RECORDS", resp.Error.Code)
}
