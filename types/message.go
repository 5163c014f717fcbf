package types

import (
	"fmt"
	"time"

	"github.com/mitchellh/hashstructure/v2"
)

// MessageText is one side of a translated utterance.
type MessageText struct {
	Text         string `json:"text"`
	Language     string `json:"language"`
	LanguageName string `json:"languageName"`
}

// Message is a single translated utterance. It only exists for the duration of
// one broadcast, there is no message history.
type Message struct {
	Id           string      `json:"id" hash:"ignore"`
	Timestamp    time.Time   `json:"timestamp"`
	Room         string      `json:"room"`
	Speaker      Role        `json:"speaker"`
	Original     MessageText `json:"original"`
	Translated   MessageText `json:"translated"`
	Confidence   float64     `json:"confidence"`
	SpeakerId    string      `json:"speakerId"`
	TtsAvailable bool        `json:"ttsAvailable"`
}

// CreateId sets the message id to a hash over the message contents. The
// timestamp goes in as unix nanoseconds, time.Time itself carries no exported
// fields for the hash.
func (m *Message) CreateId() error {
	hash, err := hashstructure.Hash(struct {
		UnixNano int64
		Message  *Message
	}{m.Timestamp.UnixNano(), m}, hashstructure.FormatV2, nil)
	if err != nil {
		return err
	}
	m.Id = fmt.Sprintf("%016x", hash)
	return nil
}
