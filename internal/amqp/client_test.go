package amqp

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestSnapshotSyncMessageRoundTrip(t *testing.T) {
	msg := NewSnapshotSyncMessage(2026, 3)

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	got, err := SnapshotSyncMessageFromJSON(data)
	if err != nil {
		t.Fatalf("SnapshotSyncMessageFromJSON() error = %v", err)
	}

	if got.Year != 2026 || got.Month != 3 {
		t.Errorf("round trip = %d-%d, want 2026-3", got.Year, got.Month)
	}
	if got.Timestamp.IsZero() {
		t.Error("expected non-zero timestamp")
	}
}

func TestSnapshotSyncMessageFromJSONInvalid(t *testing.T) {
	if _, err := SnapshotSyncMessageFromJSON([]byte("{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},
		{10, 30 * time.Second},
		{100, 30 * time.Second},
	}

	for _, tt := range tests {
		if got := exponentialBackoff(tt.attempt); got != tt.want {
			t.Errorf("exponentialBackoff(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"closed delivery channel", errDeliveryChannelClosed, true},
		{"wrapped closed delivery channel", fmt.Errorf("consume: %w", errDeliveryChannelClosed), true},
		{"refused", errors.New("dial tcp: connection refused"), true},
		{"closed", errors.New("Exception (504) Reason: channel/connection is not open: connection closed"), true},
		{"reset", errors.New("read: connection reset by peer"), true},
		{"eof", errors.New("unexpected EOF"), true},
		{"handler failure", errors.New("sheet append failed"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isConnectionError(tt.err); got != tt.want {
				t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
