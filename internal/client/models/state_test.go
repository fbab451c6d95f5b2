package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() *State {
	return &State{
		CurrentUser:    "alice",
		Capacity:       10,
		AvailableSpots: 8,
		RatePerHour:    2.5,
		ParkedCars: []ParkedCar{
			{Spot: 1, Plate: "ABC123", TimeIn: "2024-05-01T10:00:00.123456+07:00"},
			{Spot: 7, Plate: "xyz999", TimeIn: "2024-05-01T11:00:00+07:00", Comments: "blue"},
		},
	}
}

func TestState_Unmarshal_NullSpotAndMissingFields(t *testing.T) {
	raw := `{
		"current_user": "bob",
		"is_admin": true,
		"capacity": 3,
		"available_spots": 2,
		"rate_per_hour": 2.0,
		"parked_cars": [{"spot": 2, "plate": null, "time_in": "2024-05-01T10:00:00"}],
		"transactions": [
			{"spot": null, "plate": "OLD1", "time_in": "a", "time_out": "b", "amount": 1.5},
			{"spot": 4, "plate": "NEW1", "time_in": "c", "time_out": "d", "amount": 3, "paid": true}
		]
	}`

	var s State
	require.NoError(t, json.Unmarshal([]byte(raw), &s))

	assert.Equal(t, "bob", s.CurrentUser)
	assert.True(t, s.IsAdmin)
	require.Len(t, s.ParkedCars, 1)
	assert.Equal(t, "", s.ParkedCars[0].Plate)
	assert.Equal(t, "", s.ParkedCars[0].Comments)

	require.Len(t, s.Transactions, 2)
	assert.False(t, s.Transactions[0].Spot.Valid)
	assert.True(t, s.Transactions[1].Spot.Valid)
	assert.Equal(t, int64(4), s.Transactions[1].Spot.Int64)
	assert.True(t, s.Transactions[1].Paid)
}

func TestState_FindCar(t *testing.T) {
	s := sampleState()

	car, ok := s.FindCar("7")
	require.True(t, ok)
	assert.Equal(t, "xyz999", car.Plate)

	_, ok = s.FindCar("3")
	assert.False(t, ok)

	_, ok = s.FindCar("07")
	assert.False(t, ok)

	var nilState *State
	_, ok = nilState.FindCar("1")
	assert.False(t, ok)
}

func TestState_SearchPlates_CaseInsensitiveSubstring(t *testing.T) {
	s := sampleState()

	hits := s.SearchPlates("abc")
	require.Len(t, hits, 1)
	assert.Equal(t, "ABC123", hits[0].Plate)

	hits = s.SearchPlates("9")
	require.Len(t, hits, 1)
	assert.Equal(t, "xyz999", hits[0].Plate)

	assert.Empty(t, s.SearchPlates("zzz"))
}

func TestState_TransactionsNewestFirst_DoesNotMutate(t *testing.T) {
	s := &State{Transactions: []Transaction{{Plate: "A"}, {Plate: "B"}, {Plate: "C"}}}

	got := s.TransactionsNewestFirst()

	assert.Equal(t, []string{"C", "B", "A"}, []string{got[0].Plate, got[1].Plate, got[2].Plate})
	assert.Equal(t, "A", s.Transactions[0].Plate)
}

func TestRemoveRequest_OmitsUnsetOverrides(t *testing.T) {
	b, err := json.Marshal(RemoveRequest{Spot: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"spot": 3}`, string(b))

	hours, amount := 2.0, 5.5
	b, err = json.Marshal(RemoveRequest{Spot: 3, HoursOverride: &hours, AmountOverride: &amount})
	require.NoError(t, err)
	assert.JSONEq(t, `{"spot": 3, "hours_override": 2, "amount_override": 5.5}`, string(b))
}

func TestUser_CreatedAtAbsent(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"username": "carol", "role": "user"}`), &u))
	assert.False(t, u.CreatedAt.Valid)

	require.NoError(t, json.Unmarshal([]byte(`{"username": "dave", "role": "admin", "created_at": "2024-05-01 10:00:00"}`), &u))
	assert.True(t, u.CreatedAt.Valid)
	assert.Equal(t, "2024-05-01 10:00:00", u.CreatedAt.String)
}
