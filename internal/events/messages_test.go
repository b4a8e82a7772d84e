package events

import (
	"testing"
	"time"
)

func TestTransactionEventJSON(t *testing.T) {
	event := NewTransactionEvent(ActionUpdate, "txn-1", "user-1")

	body, err := event.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() = %v", err)
	}

	decoded, err := TransactionEventFromJSON(body)
	if err != nil {
		t.Fatalf("TransactionEventFromJSON() = %v", err)
	}
	if decoded.Action != ActionUpdate || decoded.ID != "txn-1" || decoded.UserID != "user-1" {
		t.Errorf("decoded = %+v", decoded)
	}
	if decoded.Timestamp.IsZero() || time.Since(decoded.Timestamp) > time.Minute {
		t.Errorf("timestamp not preserved: %v", decoded.Timestamp)
	}
}

func TestTransactionEventFromJSON_Invalid(t *testing.T) {
	if _, err := TransactionEventFromJSON([]byte("{not json")); err == nil {
		t.Error("malformed payload must fail to decode")
	}
}
