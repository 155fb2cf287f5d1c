package addressbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/addressbook/internal/contact"
)

func mustAdd(t *testing.T, b *Book, name, phone, birthday string) *contact.Record {
	t.Helper()
	r, err := b.Add(name, phone, birthday)
	require.NoError(t, err)
	return r
}

func names(records []*contact.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name()
	}
	return out
}

func TestBook_PutGet(t *testing.T) {
	b := New()
	r, err := contact.NewRecord("Alice", "111", "")
	require.NoError(t, err)

	b.Put(r)
	got, err := b.Get("Alice")
	require.NoError(t, err)
	assert.Same(t, r, got)
	assert.Equal(t, 1, b.Len())
}

func TestBook_GetMissing(t *testing.T) {
	_, err := New().Get("Nobody")
	require.Error(t, err)
	assert.True(t, contact.IsNotFound(err))
}

func TestBook_PutReplacesWithoutMerging(t *testing.T) {
	b := New()
	old := mustAdd(t, b, "Alice", "111", "2000-06-15")
	require.NoError(t, old.AddPhone("222"))
	mustAdd(t, b, "Bob", "333", "")

	replacement, err := contact.NewRecord("Alice", "999", "")
	require.NoError(t, err)
	b.Put(replacement)

	got, err := b.Get("Alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"999"}, got.Phones())
	assert.Equal(t, "", got.BirthdayValue())
	assert.Equal(t, []string{"Alice", "Bob"}, b.Names(), "replaced key keeps its position")
	assert.Equal(t, 2, b.Len())
}

func TestBook_KeyMatchesRecordName(t *testing.T) {
	b := New()
	mustAdd(t, b, "Alice", "111", "")
	mustAdd(t, b, "alice", "222", "")

	for _, name := range b.Names() {
		r, err := b.Get(name)
		require.NoError(t, err)
		assert.Equal(t, name, r.Name())
	}
	assert.Equal(t, 2, b.Len(), "keys are case-sensitive")
}

func TestBook_Remove(t *testing.T) {
	b := New()
	mustAdd(t, b, "Alice", "111", "")
	mustAdd(t, b, "Bob", "222", "")
	mustAdd(t, b, "Carol", "333", "")

	assert.True(t, b.Remove("Bob"))
	assert.Equal(t, []string{"Alice", "Carol"}, b.Names())
	assert.False(t, b.Has("Bob"))

	assert.False(t, b.Remove("Bob"), "removing an absent name is a no-op")
	assert.Equal(t, 2, b.Len())
}

func TestBook_AddInvalidLeavesBookUnchanged(t *testing.T) {
	b := New()
	mustAdd(t, b, "Alice", "111", "")

	_, err := b.Add("Alice", "abc", "")
	assert.Equal(t, contact.CodeInvalidPhone, contact.CodeOf(err))

	_, err = b.Add("Bob", "222", "2023-02-30")
	assert.Equal(t, contact.CodeInvalidDate, contact.CodeOf(err))

	got, err := b.Get("Alice")
	require.NoError(t, err)
	assert.Equal(t, "111", got.FirstPhone())
	assert.False(t, b.Has("Bob"))
}

func TestBook_Change(t *testing.T) {
	b := New()
	mustAdd(t, b, "Alice", "111", "")

	r, err := b.Change("Alice", "222", "1999-01-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"222"}, r.Phones())
	assert.Equal(t, "1999-01-02", r.BirthdayValue())

	_, err = b.Change("Bob", "333", "1999-01-02")
	assert.True(t, contact.IsNotFound(err))
	assert.False(t, b.Has("Bob"))

	_, err = b.Change("Alice", "x", "1999-01-02")
	assert.True(t, contact.IsValidation(err))
	got, _ := b.Get("Alice")
	assert.Equal(t, "222", got.FirstPhone(), "failed change keeps the old record")
}

func TestBook_FirstN(t *testing.T) {
	b := New()
	mustAdd(t, b, "Alice", "111", "")
	mustAdd(t, b, "Bob", "222", "")
	mustAdd(t, b, "Carol", "333", "")

	got, err := b.FirstN(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob"}, names(got))

	got, err = b.FirstN(3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, names(got))

	_, err = b.FirstN(5)
	require.Error(t, err)
	assert.Equal(t, contact.CodeInsufficientRecords, contact.CodeOf(err))

	got, err = b.FirstN(0)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = b.FirstN(-1)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBook_FirstNEmpty(t *testing.T) {
	_, err := New().FirstN(1)
	assert.Equal(t, contact.CodeInsufficientRecords, contact.CodeOf(err))
}

func TestBook_AllAndNamesAreCopies(t *testing.T) {
	b := New()
	mustAdd(t, b, "Alice", "111", "")
	mustAdd(t, b, "Bob", "222", "")

	ns := b.Names()
	ns[0] = "Mallory"
	all := b.All()
	all[0] = nil

	assert.Equal(t, []string{"Alice", "Bob"}, b.Names())
	assert.Equal(t, []string{"Alice", "Bob"}, names(b.All()))
}
