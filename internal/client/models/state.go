// Package models defines the data exchanged with the carpark server and held
// by the dashboard: the lot snapshot, its parked cars and transactions, user
// accounts, and the request bodies of every API call.
package models

import (
	"strconv"
	"strings"

	"gopkg.in/guregu/null.v4"
)

// State is a full snapshot of the lot as returned by the server. The client
// never patches it; every successful call replaces it wholesale.
type State struct {
	// CurrentUser is the username of the authenticated caller.
	CurrentUser string `json:"current_user"`
	// IsAdmin enables the administrative panel.
	IsAdmin bool `json:"is_admin"`

	Capacity int `json:"capacity"`
	// AvailableSpots is server-computed and displayed verbatim.
	AvailableSpots int     `json:"available_spots"`
	RatePerHour    float64 `json:"rate_per_hour"`

	ParkedCars []ParkedCar `json:"parked_cars"`
	// Transactions are kept in receipt order (oldest first).
	Transactions []Transaction `json:"transactions"`
}

// ParkedCar is an occupied spot.
type ParkedCar struct {
	Spot     int    `json:"spot"`
	Plate    string `json:"plate"`
	TimeIn   string `json:"time_in"`
	Comments string `json:"comments"`
}

// Transaction is a completed park/remove cycle. Spot may be null on the wire.
type Transaction struct {
	Spot     null.Int `json:"spot"`
	Plate    string   `json:"plate"`
	TimeIn   string   `json:"time_in"`
	TimeOut  string   `json:"time_out"`
	Amount   float64  `json:"amount"`
	Paid     bool     `json:"paid,omitempty"`
	Comments string   `json:"comments,omitempty"`
}

// FindCar looks a spot up among the parked cars. The spot is compared in its
// decimal string form so "07" does not match spot 7 but "7" does.
func (s *State) FindCar(spot string) (ParkedCar, bool) {
	if s == nil {
		return ParkedCar{}, false
	}
	for _, car := range s.ParkedCars {
		if strconv.Itoa(car.Spot) == spot {
			return car, true
		}
	}
	return ParkedCar{}, false
}

// SearchPlates returns the parked cars whose plate contains query,
// case-insensitively, in snapshot order. The query is used as given.
func (s *State) SearchPlates(query string) []ParkedCar {
	if s == nil {
		return nil
	}
	q := strings.ToLower(query)
	var hits []ParkedCar
	for _, car := range s.ParkedCars {
		if strings.Contains(strings.ToLower(car.Plate), q) {
			hits = append(hits, car)
		}
	}
	return hits
}

// TransactionsNewestFirst returns a reversed copy of Transactions.
func (s *State) TransactionsNewestFirst() []Transaction {
	if s == nil {
		return nil
	}
	out := make([]Transaction, len(s.Transactions))
	for i, tx := range s.Transactions {
		out[len(s.Transactions)-1-i] = tx
	}
	return out
}
