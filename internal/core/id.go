package core

import "github.com/google/uuid"

// IDGenerator produces unique identifiers for rows, transactions and
// categories. It is injected so tests can use deterministic ids and so
// id generation never depends on wall-clock timestamps.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator generates random UUIDv4 identifiers.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
