package amqp

import (
	"encoding/json"
	"time"
)

// DatasetUploadedMessage announces that a session replaced its dataset.
// Downstream consumers only need the shape of the upload, not the rows.
type DatasetUploadedMessage struct {
	Records   int       `json:"records"`
	Checksum  string    `json:"checksum"`
	Timestamp time.Time `json:"timestamp"`
}

// NewDatasetUploadedMessage creates an upload announcement
func NewDatasetUploadedMessage(records int, checksum string) *DatasetUploadedMessage {
	return &DatasetUploadedMessage{
		Records:   records,
		Checksum:  checksum,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *DatasetUploadedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FromJSON creates a message from JSON bytes
func DatasetUploadedMessageFromJSON(data []byte) (*DatasetUploadedMessage, error) {
	var msg DatasetUploadedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
