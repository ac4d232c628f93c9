package amqp

import (
	"encoding/json"
	"time"
)

// TripSyncMessage asks the worker to export one trip to the external
// ledger. It carries only the id; the worker fetches the current record
// from the store, so a burst of edits collapses into one export of the
// latest state.
type TripSyncMessage struct {
	TripID    string    `json:"trip_id"`
	Timestamp time.Time `json:"timestamp"`
}

// TripDeleteMessage asks the worker to remove a trip from the ledger.
// The record is already gone from the store, so the message is all the
// worker gets.
type TripDeleteMessage struct {
	TripID    string    `json:"trip_id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewTripSyncMessage(tripID string) *TripSyncMessage {
	return &TripSyncMessage{TripID: tripID, Timestamp: time.Now()}
}

func NewTripDeleteMessage(tripID string) *TripDeleteMessage {
	return &TripDeleteMessage{TripID: tripID, Timestamp: time.Now()}
}

// envelope wraps every published message with its kind so one queue can
// carry both operations.
type envelope struct {
	Kind    string          `json:"kind"` // "sync" or "delete"
	Payload json.RawMessage `json:"payload"`
}

const (
	kindSync   = "sync"
	kindDelete = "delete"
)

func wrap(kind string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Kind: kind, Payload: raw})
}
