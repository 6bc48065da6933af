package realtime

import "encoding/json"

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// Encode marshals a message for the wire, falling back to an empty object
// payload if the payload itself cannot be marshaled.
func Encode(action string, payload interface{}) []byte {
	raw, err := json.Marshal(Message{Action: action, Payload: payload})
	if err != nil {
		raw, _ = json.Marshal(Message{Action: action, Payload: map[string]string{}})
	}
	return raw
}
