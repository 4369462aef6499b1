package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func futureDate() time.Time {
	return time.Now().AddDate(0, 1, 0)
}

func newSubmittedEvent(t *testing.T) *Event {
	t.Helper()
	e, err := NewEvent("host-1", EventDetails{Type: "wedding", Date: futureDate(), GuestCount: 100})
	require.NoError(t, err)
	require.NoError(t, e.SetVendorSelections([]VendorSelection{
		{VendorID: "vendor-a", ServiceID: "svc-a", PackageName: "Gold", Price: 5000},
		{VendorID: "vendor-b", ServiceID: "svc-b", PackageName: "Silver", Price: 3000},
	}))
	return e
}

func TestNewEventValidation(t *testing.T) {
	tests := []struct {
		name    string
		hostID  string
		details EventDetails
	}{
		{"missing host", "", EventDetails{Type: "wedding", Date: futureDate(), GuestCount: 10}},
		{"missing type", "h", EventDetails{Date: futureDate(), GuestCount: 10}},
		{"missing date", "h", EventDetails{Type: "wedding", GuestCount: 10}},
		{"zero guests", "h", EventDetails{Type: "wedding", Date: futureDate()}},
		{"past date", "h", EventDetails{Type: "wedding", Date: time.Now().AddDate(0, 0, -2), GuestCount: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEvent(tt.hostID, tt.details)
			assert.Error(t, err)
		})
	}
}

func TestNewEventAcceptsToday(t *testing.T) {
	e, err := NewEvent("h", EventDetails{Type: "birthday", Date: StartOfDay(time.Now()), GuestCount: 5})
	require.NoError(t, err)
	assert.Equal(t, EventStatusDraft, e.Status())
	assert.Len(t, e.GetUncommittedEvents(), 1)
}

func TestSetVendorSelectionsSubmits(t *testing.T) {
	e := newSubmittedEvent(t)

	assert.Equal(t, EventStatusSubmitted, e.Status())
	assert.Equal(t, int64(8000), e.TotalCost())
	for _, s := range e.Selections() {
		assert.Equal(t, SelectionPending, s.Status)
	}
}

func TestSetVendorSelectionsRequiresOne(t *testing.T) {
	e, err := NewEvent("h", EventDetails{Type: "wedding", Date: futureDate(), GuestCount: 10})
	require.NoError(t, err)

	assert.Error(t, e.SetVendorSelections(nil))
	assert.Equal(t, EventStatusDraft, e.Status())
}

func TestRespondToBookingRecomputesStatus(t *testing.T) {
	e := newSubmittedEvent(t)

	all, err := e.RespondToBooking("vendor-a", SelectionAccepted)
	require.NoError(t, err)
	assert.False(t, all)
	assert.Equal(t, EventStatusPending, e.Status())

	all, err = e.RespondToBooking("vendor-b", SelectionRejected)
	require.NoError(t, err)
	assert.False(t, all)
	assert.Equal(t, EventStatusPending, e.Status())

	all, err = e.RespondToBooking("vendor-b", SelectionAccepted)
	require.NoError(t, err)
	assert.True(t, all)
	assert.Equal(t, EventStatusConfirmed, e.Status())
}

func TestRespondToBookingAllRejectedCancels(t *testing.T) {
	e := newSubmittedEvent(t)

	_, err := e.RespondToBooking("vendor-a", SelectionRejected)
	require.NoError(t, err)
	_, err = e.RespondToBooking("vendor-b", SelectionRejected)
	require.NoError(t, err)

	assert.Equal(t, EventStatusCancelled, e.Status())
}

func TestRespondToBookingErrors(t *testing.T) {
	e := newSubmittedEvent(t)

	_, err := e.RespondToBooking("stranger", SelectionAccepted)
	assert.ErrorIs(t, err, ErrNotSelected)

	_, err = e.RespondToBooking("vendor-a", SelectionPending)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	draft, err := NewEvent("h", EventDetails{Type: "wedding", Date: futureDate(), GuestCount: 10})
	require.NoError(t, err)
	_, err = draft.RespondToBooking("vendor-a", SelectionAccepted)
	assert.Error(t, err)
}

func TestRespondToBookingUpdatesEverySelectionOfVendor(t *testing.T) {
	e, err := NewEvent("h", EventDetails{Type: "wedding", Date: futureDate(), GuestCount: 10})
	require.NoError(t, err)
	require.NoError(t, e.SetVendorSelections([]VendorSelection{
		{VendorID: "v", ServiceID: "s1", Price: 100},
		{VendorID: "v", ServiceID: "s2", Price: 200},
	}))

	all, err := e.RespondToBooking("v", SelectionAccepted)
	require.NoError(t, err)
	assert.True(t, all)
	assert.Equal(t, []string{"v"}, e.AcceptedVendorIDs())
}

func TestEditsLockedAfterAcceptance(t *testing.T) {
	e := newSubmittedEvent(t)
	_, err := e.RespondToBooking("vendor-a", SelectionAccepted)
	require.NoError(t, err)

	name := "renamed"
	before := e.State()

	assert.ErrorIs(t, e.UpdateDetails(EventPatch{Name: &name}), ErrSelectionsLocked)
	assert.ErrorIs(t, e.SetVendorSelections([]VendorSelection{{VendorID: "x", ServiceID: "y", Price: 1}}), ErrSelectionsLocked)
	assert.Equal(t, before, e.State())
}

func TestUpdateDetailsRecomputesTotal(t *testing.T) {
	e := newSubmittedEvent(t)

	guests := 50
	err := e.UpdateDetails(EventPatch{
		GuestCount: &guests,
		Selections: []VendorSelection{{VendorID: "vendor-c", ServiceID: "svc-c", Price: 1200}},
	})
	require.NoError(t, err)
	assert.Equal(t, 50, e.Details().GuestCount)
	assert.Equal(t, int64(1200), e.TotalCost())
}

func TestUpdateDetailsWithSelectionsSubmitsDraft(t *testing.T) {
	e, err := NewEvent("host-1", EventDetails{Type: "wedding", Date: futureDate(), GuestCount: 100})
	require.NoError(t, err)
	require.Equal(t, EventStatusDraft, e.Status())

	require.NoError(t, e.UpdateDetails(EventPatch{
		Selections: []VendorSelection{{VendorID: "vendor-a", ServiceID: "svc-a", Price: 5000}},
	}))
	assert.Equal(t, EventStatusSubmitted, e.Status())

	allAccepted, err := e.RespondToBooking("vendor-a", SelectionAccepted)
	require.NoError(t, err)
	assert.True(t, allAccepted)
	assert.Equal(t, EventStatusConfirmed, e.Status())
}

func TestUpdateDetailsWithoutSelectionsKeepsStatus(t *testing.T) {
	e, err := NewEvent("host-1", EventDetails{Type: "wedding", Date: futureDate(), GuestCount: 100})
	require.NoError(t, err)

	venue := "Riverside Hall"
	require.NoError(t, e.UpdateDetails(EventPatch{Venue: &venue}))
	assert.Equal(t, EventStatusDraft, e.Status())
	assert.Equal(t, "Riverside Hall", e.Details().Venue)
}

func TestDeriveStatus(t *testing.T) {
	sel := func(statuses ...SelectionStatus) []VendorSelection {
		out := make([]VendorSelection, len(statuses))
		for i, s := range statuses {
			out[i] = VendorSelection{Status: s}
		}
		return out
	}

	assert.Equal(t, EventStatusPending, DeriveStatus(sel(SelectionAccepted, SelectionPending)))
	assert.Equal(t, EventStatusConfirmed, DeriveStatus(sel(SelectionAccepted, SelectionAccepted)))
	assert.Equal(t, EventStatusPending, DeriveStatus(sel(SelectionAccepted, SelectionRejected)))
	assert.Equal(t, EventStatusCancelled, DeriveStatus(sel(SelectionRejected, SelectionRejected)))
}

func TestIsStale(t *testing.T) {
	now := time.Now()
	past := now.AddDate(0, 0, -3)

	stale := ReconstructEvent(EventState{ID: "1", Status: EventStatusSubmitted, Details: EventDetails{Date: past}})
	assert.True(t, stale.IsStale(now))
	assert.True(t, stale.MarkDropped())
	assert.False(t, stale.MarkDropped())
	assert.True(t, stale.IsStale(now))

	accepted := ReconstructEvent(EventState{
		ID: "2", Status: EventStatusPending, Details: EventDetails{Date: past},
		Selections: []VendorSelection{{VendorID: "v", Status: SelectionAccepted}},
	})
	assert.False(t, accepted.IsStale(now))

	confirmed := ReconstructEvent(EventState{ID: "3", Status: EventStatusConfirmed, Details: EventDetails{Date: past}})
	assert.False(t, confirmed.IsStale(now))

	today := ReconstructEvent(EventState{ID: "4", Status: EventStatusDraft, Details: EventDetails{Date: StartOfDay(now)}})
	assert.False(t, today.IsStale(now))
}

func TestComplete(t *testing.T) {
	e := newSubmittedEvent(t)
	assert.Error(t, e.Complete())

	_, err := e.RespondToBooking("vendor-a", SelectionAccepted)
	require.NoError(t, err)
	_, err = e.RespondToBooking("vendor-b", SelectionAccepted)
	require.NoError(t, err)

	require.NoError(t, e.Complete())
	assert.Equal(t, EventStatusCompleted, e.Status())
}
