package http

import (
	"encoding/json"
	"testing"
	"time"

	"party-paradise/internal/domain/aggregate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pinLocal runs the test with the server zone set to loc
func pinLocal(t *testing.T, loc *time.Location) {
	t.Helper()
	saved := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = saved })
}

func TestDateCalendarDateIsLocalMidnight(t *testing.T) {
	pinLocal(t, time.FixedZone("UTC-5", -5*60*60))

	today := time.Now().In(time.Local)
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"`+today.Format(dateLayout)+`"`), &d))

	assert.True(t, d.Time.Equal(aggregate.StartOfDay(today)), "parsed %s", d.Time)
	assert.Equal(t, time.Local, d.Time.Location())

	evt, err := aggregate.NewEvent("host-1", aggregate.EventDetails{
		Type:       "birthday",
		Date:       d.Time,
		GuestCount: 10,
	})
	require.NoError(t, err, "an event dated today is not in the past")
	assert.False(t, evt.IsStale(time.Now()), "an event dated today is not swept")
	assert.True(t, evt.IsStale(time.Now().AddDate(0, 0, 1)))
}

func TestDateAcceptsTimestampsAndRejectsGarbage(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2030-05-01T10:00:00Z"`), &d))
	assert.Equal(t, time.Date(2030, 5, 1, 10, 0, 0, 0, time.UTC), d.Time.UTC())

	var empty Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &empty))
	assert.True(t, empty.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"01/05/2030"`), &d))
}
