package events

import (
	"encoding/json"
	"time"
)

// Action names a mutation on the transaction table.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// TransactionEvent announces a completed mutation. It carries ids only;
// consumers fetch the record themselves if they need it.
type TransactionEvent struct {
	Action    Action    `json:"action"`
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewTransactionEvent(action Action, id, userID string) *TransactionEvent {
	return &TransactionEvent{
		Action:    action,
		ID:        id,
		UserID:    userID,
		Timestamp: time.Now(),
	}
}

func (e *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func TransactionEventFromJSON(data []byte) (*TransactionEvent, error) {
	var e TransactionEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
