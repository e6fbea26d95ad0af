package amqp

import (
	"encoding/json"
	"time"
)

// RecordBackupMessage asks the worker to copy one ledger record to the
// backup spreadsheet. It carries only the ID and version; the worker
// fetches the full record from the database.
type RecordBackupMessage struct {
	ID        int64     `json:"id"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRecordBackupMessage(id, version int64) *RecordBackupMessage {
	return &RecordBackupMessage{
		ID:        id,
		Version:   version,
		Timestamp: time.Now(),
	}
}

func (m *RecordBackupMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordBackupMessageFromJSON(data []byte) (*RecordBackupMessage, error) {
	var msg RecordBackupMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
