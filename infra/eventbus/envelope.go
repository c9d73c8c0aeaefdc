package eventbus

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/amirasaad/digitalbank/pkg/domain/events"
)

// ErrUnknownEventType is returned when an envelope names a type missing from events.EventTypes.
var ErrUnknownEventType = errors.New("unknown event type")

// envelope is the wire format shared by the brokered buses.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func encodeEnvelope(event events.Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	envBytes, err := json.Marshal(envelope{Type: event.Type(), Payload: data})
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}
	return envBytes, nil
}

// decodeEnvelope returns the envelope's type and the decoded event.
func decodeEnvelope(raw []byte) (events.EventType, events.Event, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	constructor, ok := events.EventTypes[env.Type]
	if !ok {
		return events.EventType(env.Type), nil, fmt.Errorf("%w: %q", ErrUnknownEventType, env.Type)
	}
	evt := constructor()
	if err := json.Unmarshal(env.Payload, evt); err != nil {
		return events.EventType(env.Type), nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	return events.EventType(env.Type), evt, nil
}

// nameFor builds "<prefix>:<aggregate>:<action>" from an event type such as
// "Account.Deposited".
func nameFor(prefix string, eventType events.EventType) string {
	parts := strings.Split(eventType.String(), ".")
	if len(parts) == 2 {
		return fmt.Sprintf("%s:%s:%s", prefix, strings.ToLower(parts[0]), strings.ToLower(parts[1]))
	}
	return fmt.Sprintf("%s:%s", prefix, strings.ToLower(eventType.String()))
}
