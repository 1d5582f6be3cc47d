package amqp

import (
	"encoding/json"
	"time"
)

// RecordEventMessage tells the journal worker that a record was created.
// It carries only the kind and id; the worker fetches the full record from
// the database before mirroring it.
type RecordEventMessage struct {
	Kind      string    `json:"kind"` // meditation | reading | reflection | plan
	RecordID  string    `json:"record_id"`
	OwnerID   string    `json:"owner_id"`
	Date      string    `json:"date"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRecordEventMessage(kind, recordID, ownerID, date string) *RecordEventMessage {
	return &RecordEventMessage{
		Kind:      kind,
		RecordID:  recordID,
		OwnerID:   ownerID,
		Date:      date,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RecordEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordEventMessageFromJSON creates a message from JSON bytes
func RecordEventMessageFromJSON(data []byte) (*RecordEventMessage, error) {
	var msg RecordEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
