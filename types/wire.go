package types

import "encoding/json"

// JSON-serialized WebsocketMessage is what is actually sent via the Websocket connection
type WebsocketMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// WireEvent wraps an Event for transmission: the payload becomes the "data"
// part of the envelope, delivery metadata is not wired.
type WireEvent struct {
	*Event
}

func (e WireEvent) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(e.Payload)
	if err != nil {
		return nil, err
	}
	m := WebsocketMessage{
		Event: e.Event.Name,
		Data:  data,
	}
	return json.Marshal(m)
}
