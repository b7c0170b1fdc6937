package amqp

import (
	"encoding/json"
	"time"
)

// SnapshotSyncMessage asks the worker to mirror one month's plan
// snapshot. It carries only the month key; the worker reads the current
// snapshot from storage, so redelivery always mirrors the latest state.
type SnapshotSyncMessage struct {
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Timestamp time.Time `json:"timestamp"`
}

func NewSnapshotSyncMessage(year, month int) *SnapshotSyncMessage {
	return &SnapshotSyncMessage{
		Year:      year,
		Month:     month,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *SnapshotSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SnapshotSyncMessageFromJSON creates a message from JSON bytes
func SnapshotSyncMessageFromJSON(data []byte) (*SnapshotSyncMessage, error) {
	var msg SnapshotSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
