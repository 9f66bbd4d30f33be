package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
)

// TransactionAddedMessage announces a transaction that has been persisted.
// It carries the full record so consumers do not need access to the store.
type TransactionAddedMessage struct {
	ID          string           `json:"id"`
	Transaction core.Transaction `json:"transaction"`
	Timestamp   time.Time        `json:"timestamp"`
}

// NewTransactionAddedMessage creates a message with a fresh random ID
func NewTransactionAddedMessage(t core.Transaction) *TransactionAddedMessage {
	return &TransactionAddedMessage{
		ID:          uuid.NewString(),
		Transaction: t,
		Timestamp:   time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionAddedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionAddedMessageFromJSON creates a message from JSON bytes
func TransactionAddedMessageFromJSON(data []byte) (*TransactionAddedMessage, error) {
	var msg TransactionAddedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
