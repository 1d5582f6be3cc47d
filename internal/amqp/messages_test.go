package amqp

import (
	"testing"
	"time"
)

func TestRecordEventMessageRoundtrip(t *testing.T) {
	msg := NewRecordEventMessage("meditation", "42", "alice", "2025-03-10")
	if msg.Timestamp.IsZero() {
		t.Fatal("expected timestamp to be set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := RecordEventMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Kind != "meditation" || got.RecordID != "42" || got.OwnerID != "alice" || got.Date != "2025-03-10" {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
	if !got.Timestamp.Truncate(time.Second).Equal(msg.Timestamp.Truncate(time.Second)) {
		t.Errorf("timestamp mismatch: %v vs %v", got.Timestamp, msg.Timestamp)
	}
}

func TestRecordEventMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := RecordEventMessageFromJSON([]byte("{not json")); err == nil {
		t.Error("expected error for malformed payload")
	}
}
