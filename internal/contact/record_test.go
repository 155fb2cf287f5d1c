package contact

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewRecord(t *testing.T) {
	r, err := NewRecord("Alice", "111", "2000-06-15")
	require.NoError(t, err)
	assert.Equal(t, "Alice", r.Name())
	assert.Equal(t, []string{"111"}, r.Phones())
	assert.Equal(t, "111", r.FirstPhone())

	b, ok := r.Birthday()
	require.True(t, ok)
	assert.Equal(t, 2000, b.Year())
	assert.Equal(t, "2000-06-15", r.BirthdayValue())
}

func TestNewRecord_NoBirthday(t *testing.T) {
	r, err := NewRecord("Bob", "222", "")
	require.NoError(t, err)
	_, ok := r.Birthday()
	assert.False(t, ok)
	assert.Equal(t, "", r.BirthdayValue())
}

func TestNewRecord_Atomic(t *testing.T) {
	r, err := NewRecord("Alice", "11x", "2000-06-15")
	assert.Nil(t, r)
	assert.Equal(t, CodeInvalidPhone, CodeOf(err))

	r, err = NewRecord("Alice", "111", "2000-02-30")
	assert.Nil(t, r)
	assert.Equal(t, CodeInvalidDate, CodeOf(err))
}

func TestNewRecord_InvalidUTF8Name(t *testing.T) {
	r, err := NewRecord("Jo\xffe", "111", "")
	assert.Nil(t, r)
	assert.Equal(t, CodeInvalidName, CodeOf(err))
}

func TestRecord_AddPhone(t *testing.T) {
	r, err := NewRecord("Alice", "111", "")
	require.NoError(t, err)

	require.NoError(t, r.AddPhone("222"))
	assert.Equal(t, []string{"111", "222"}, r.Phones())

	err = r.AddPhone("bad")
	assert.Equal(t, CodeInvalidPhone, CodeOf(err))
	assert.Equal(t, []string{"111", "222"}, r.Phones())
}

func TestRecord_RemovePhone(t *testing.T) {
	r, err := NewRecord("Alice", "111", "")
	require.NoError(t, err)
	require.NoError(t, r.AddPhone("222"))
	require.NoError(t, r.AddPhone("111"))

	require.NoError(t, r.RemovePhone("111"))
	assert.Equal(t, []string{"222", "111"}, r.Phones(), "only the first match is removed")

	require.NoError(t, r.RemovePhone("999"))
	assert.Equal(t, []string{"222", "111"}, r.Phones(), "absent phone is a no-op")

	require.NoError(t, r.RemovePhone("222"))
	err = r.RemovePhone("111")
	assert.Equal(t, CodeLastPhone, CodeOf(err))
	assert.Equal(t, []string{"111"}, r.Phones())
}

func TestRecord_EditPhone(t *testing.T) {
	r, err := NewRecord("Alice", "111", "")
	require.NoError(t, err)
	require.NoError(t, r.AddPhone("222"))

	require.NoError(t, r.EditPhone("111", "333"))
	assert.Equal(t, []string{"333", "222"}, r.Phones())

	require.NoError(t, r.EditPhone("999", "444"))
	assert.Equal(t, []string{"333", "222"}, r.Phones())

	err = r.EditPhone("222", "4a4")
	assert.Equal(t, CodeInvalidPhone, CodeOf(err))
	assert.Equal(t, []string{"333", "222"}, r.Phones())
}

func TestRecord_PhonesReturnsCopy(t *testing.T) {
	r, err := NewRecord("Alice", "111", "")
	require.NoError(t, err)

	phones := r.Phones()
	phones[0] = "999"
	assert.Equal(t, "111", r.FirstPhone())
}

func TestDaysToBirthday(t *testing.T) {
	tests := []struct {
		name     string
		birthday string
		today    time.Time
		want     int
	}{
		{"same day", "2000-06-15", date(2024, time.June, 15), 0},
		{"day after rolls to next year", "2000-06-15", date(2024, time.June, 16), 364},
		{"start of year", "2000-06-15", date(2024, time.January, 1), 166},
		{"day before", "2000-06-15", date(2024, time.June, 14), 1},
		{"across leap day", "2000-03-01", date(2024, time.February, 28), 2},
		{"new year's eve to new year", "1990-01-01", date(2023, time.December, 31), 1},
		{"leap birthday in leap year", "2000-02-29", date(2024, time.February, 1), 28},
		{"leap birthday on the day", "2000-02-29", date(2024, time.February, 29), 0},
		{"leap birthday skips common years", "2000-02-29", date(2025, time.January, 1), 1154},
		{"leap birthday just passed", "2000-02-29", date(2024, time.March, 1), 1460},
		{"leap birthday before century", "1996-02-29", date(2097, time.March, 1), 2555},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRecord("Alice", "111", tt.birthday)
			require.NoError(t, err)

			days, ok := r.DaysToBirthday(tt.today)
			require.True(t, ok)
			assert.Equal(t, tt.want, days)
		})
	}
}

func TestDaysToBirthday_IgnoresTimeOfDay(t *testing.T) {
	r, err := NewRecord("Alice", "111", "2000-06-15")
	require.NoError(t, err)

	late := time.Date(2024, time.June, 15, 23, 59, 59, 0, time.UTC)
	days, ok := r.DaysToBirthday(late)
	require.True(t, ok)
	assert.Equal(t, 0, days)

	warsaw := time.FixedZone("CEST", 2*60*60)
	early := time.Date(2024, time.June, 14, 0, 30, 0, 0, warsaw)
	days, ok = r.DaysToBirthday(early)
	require.True(t, ok)
	assert.Equal(t, 1, days)
}

func TestDaysToBirthday_NoBirthday(t *testing.T) {
	r, err := NewRecord("Bob", "222", "")
	require.NoError(t, err)

	days, ok := r.DaysToBirthday(date(2024, time.June, 15))
	assert.False(t, ok)
	assert.Zero(t, days)
}
