// Package pipeline orchestrates a single utterance through the front desk:
// status broadcast, transcription (audio only), translation, result broadcast.
// It is the only component talking to the external collaborators.
package pipeline

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"github.com/tcriess/lightspeed-frontdesk/filter"
	"github.com/tcriess/lightspeed-frontdesk/globals"
	"github.com/tcriess/lightspeed-frontdesk/language"
	"github.com/tcriess/lightspeed-frontdesk/store"
	"github.com/tcriess/lightspeed-frontdesk/transcribe"
	"github.com/tcriess/lightspeed-frontdesk/translate"
	"github.com/tcriess/lightspeed-frontdesk/types"
)

const (
	// confidence reported for typed text
	textConfidence = 1.0
	// confidence used when the transcription service does not report one
	defaultTranscriptionConfidence = 0.95

	notAuthorizedMessage = "Not authorized to send messages to this room"
	noSpeechMessage      = "No speech detected, please try again"
)

// Broadcaster delivers events to their room / target filter recipients.
// Implemented by ws.Hub, replaced by a recording fake in tests.
type Broadcaster interface {
	BroadcastEvents(events []*types.Event)
}

type Pipeline struct {
	store       *store.Store
	resolver    language.Resolver
	transcriber transcribe.Transcriber
	translator  translate.Translator
	caster      Broadcaster
}

func New(st *store.Store, resolver language.Resolver, transcriber transcribe.Transcriber, translator translate.Translator, caster Broadcaster) *Pipeline {
	return &Pipeline{
		store:       st,
		resolver:    resolver,
		transcriber: transcriber,
		translator:  translator,
		caster:      caster,
	}
}

// HandleText runs the pipeline for a typed message.
func (p *Pipeline) HandleText(ctx context.Context, connectionId, room string, role types.Role, explicitLanguage, text string) {
	sess, ok := p.authorize(connectionId, room)
	if !ok {
		return
	}
	p.translateAndBroadcast(ctx, connectionId, room, role, explicitLanguage, sess.Language, text, textConfidence)
}

// HandleAudio runs the pipeline for a spoken message. audioData is base64 PCM.
func (p *Pipeline) HandleAudio(ctx context.Context, connectionId, room string, role types.Role, explicitLanguage, audioData string) {
	sess, ok := p.authorize(connectionId, room)
	if !ok {
		return
	}
	p.status(room, types.ProcessingStatus{Status: types.StatusTranscribing, Speaker: role})

	audio, err := base64.StdEncoding.DecodeString(audioData)
	if err != nil {
		globals.AppLogger.Error("could not decode audio payload", "error", err)
		p.fail(connectionId, room, role, "Could not decode audio data")
		return
	}
	srcLang := p.resolver.TranscriptionLanguage(role, explicitLanguage, sess.Language)
	res, err := p.transcriber.Transcribe(ctx, audio, srcLang)
	if err != nil {
		globals.AppLogger.Error("transcription failed", "error", err, "room", room)
		p.fail(connectionId, room, role, "Transcription failed: "+err.Error())
		return
	}
	transcript := strings.TrimSpace(res.Transcript)
	if transcript == "" {
		// room-wide notice only, nothing to translate or broadcast
		p.status(room, types.ProcessingStatus{Status: types.StatusError, Speaker: role, Message: noSpeechMessage})
		return
	}
	confidence := res.Confidence
	if confidence == 0 {
		confidence = defaultTranscriptionConfidence
	}
	p.translateAndBroadcast(ctx, connectionId, room, role, explicitLanguage, sess.Language, transcript, confidence)
}

// authorize checks that the sending connection holds a session in the declared
// room. On failure only the sender is notified, nothing reaches the room.
func (p *Pipeline) authorize(connectionId, room string) (*types.Session, bool) {
	sess, ok := p.store.GetSession(connectionId)
	if !ok || sess.Room != room {
		p.caster.BroadcastEvents([]*types.Event{
			types.NewEvent("", types.EventNameError, filter.OnlyConnection(connectionId), types.ErrorMessage{Message: notAuthorizedMessage}),
		})
		return nil, false
	}
	return sess, true
}

func (p *Pipeline) translateAndBroadcast(ctx context.Context, connectionId, room string, role types.Role, explicitLanguage, sessionLanguage, text string, confidence float64) {
	p.status(room, types.ProcessingStatus{Status: types.StatusTranslating, Speaker: role})

	// re-read the room so the direction uses the freshest guest language, it
	// may have changed while the transcription call was in flight
	roomState, _ := p.store.GetRoom(room)
	src, tgt := p.resolver.Direction(roomState, role, explicitLanguage, sessionLanguage)

	translated, err := p.translator.Translate(ctx, text, src, tgt)
	if err != nil {
		globals.AppLogger.Error("translation failed", "error", err, "room", room, "source", src, "target", tgt)
		p.fail(connectionId, room, role, "Translation failed: "+err.Error())
		return
	}

	msg := types.Message{
		Timestamp: time.Now(),
		Room:      room,
		Speaker:   role,
		Original: types.MessageText{
			Text:         text,
			Language:     src,
			LanguageName: language.DisplayName(src),
		},
		Translated: types.MessageText{
			Text:         translated,
			Language:     tgt,
			LanguageName: language.DisplayName(tgt),
		},
		Confidence:   confidence,
		SpeakerId:    connectionId,
		TtsAvailable: false, // speech synthesis is disabled
	}
	if err := msg.CreateId(); err != nil {
		globals.AppLogger.Error("could not hash message", "error", err)
	}
	p.caster.BroadcastEvents([]*types.Event{
		types.NewEvent(room, types.EventNameTranslation, "", msg),
	})
	p.status(room, types.ProcessingStatus{Status: types.StatusComplete, Speaker: role})
}

// fail notifies the sender privately and terminates the message attempt with a
// room-wide error status. Failed messages are dropped, there are no retries.
func (p *Pipeline) fail(connectionId, room string, role types.Role, reason string) {
	p.caster.BroadcastEvents([]*types.Event{
		types.NewEvent("", types.EventNameError, filter.OnlyConnection(connectionId), types.ErrorMessage{Message: reason}),
	})
	p.status(room, types.ProcessingStatus{Status: types.StatusError, Speaker: role, Message: reason})
}

func (p *Pipeline) status(room string, status types.ProcessingStatus) {
	p.caster.BroadcastEvents([]*types.Event{
		types.NewEvent(room, types.EventNameProcessingStatus, "", status),
	})
}
