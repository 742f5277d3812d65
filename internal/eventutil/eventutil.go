package eventutil

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// NewJSONMessage marshals a payload into a fresh watermill message.
func NewJSONMessage(payload any) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return message.NewMessage(watermill.NewUUID(), data), nil
}

// NewResultMessage builds a message carrying payload and propagates the
// correlation id from the message that triggered it.
func NewResultMessage(src *message.Message, payload any) (*message.Message, error) {
	msg, err := NewJSONMessage(payload)
	if err != nil {
		return nil, err
	}
	if src != nil {
		if correlationID := middleware.MessageCorrelationID(src); correlationID != "" {
			middleware.SetCorrelationID(correlationID, msg)
		}
	}
	return msg, nil
}

// Unmarshal decodes a message payload into target, wrapping decode failures
// with the message uuid for log correlation.
func Unmarshal(msg *message.Message, target any) error {
	if err := json.Unmarshal(msg.Payload, target); err != nil {
		return fmt.Errorf("failed to unmarshal message %s: %w", msg.UUID, err)
	}
	return nil
}
