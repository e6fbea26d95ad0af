// Package http exposes the webhook transport for the chat ledger.
//
// This file normalizes provider payloads. Z-API is loose about shapes:
// the sender number shows up under several keys and may be a JSON
// number, and the message body arrives either as a plain string or as
// a nested object with a message field. Everything funnels into one
// InboundMessage.
package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// InboundMessage is what the webhook hands to the service layer.
type InboundMessage struct {
	User string
	Text string
}

// Sender number can come in any of these, first non-empty wins.
var phoneKeys = []string{"telefone", "from", "connectedPhone"}

// ParseWebhookPayload extracts the sender and message text from a
// provider JSON body. A missing sender yields an empty User; the
// handler decides how to reject it.
func ParseWebhookPayload(body []byte) (InboundMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	// Phone numbers must not round-trip through float64.
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return InboundMessage{}, fmt.Errorf("decode webhook payload: %w", err)
	}

	msg := InboundMessage{
		User: extractPhone(payload),
		Text: extractText(payload["texto"]),
	}
	return msg, nil
}

func extractPhone(payload map[string]any) string {
	for _, key := range phoneKeys {
		if s := stringValue(payload[key]); s != "" {
			return s
		}
	}
	return ""
}

// extractText accepts the body as a plain string or as an object with
// a "message" (or legacy "mensagem") field.
func extractText(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]any:
		if s := stringValue(t["message"]); s != "" {
			return s
		}
		return stringValue(t["mensagem"])
	default:
		return ""
	}
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}
