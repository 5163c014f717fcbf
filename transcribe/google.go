package transcribe

import (
	"context"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"google.golang.org/api/option"
	speechpb "google.golang.org/genproto/googleapis/cloud/speech/v1"
)

// GoogleTranscriber transcribes LINEAR16 PCM audio via the Cloud Speech API.
type GoogleTranscriber struct {
	client          *speech.Client
	sampleRateHertz int32
}

func NewGoogleTranscriber(ctx context.Context, sampleRateHertz int32, credentialsFile string) (*GoogleTranscriber, error) {
	opts := make([]option.ClientOption, 0, 1)
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &GoogleTranscriber{
		client:          client,
		sampleRateHertz: sampleRateHertz,
	}, nil
}

func (t *GoogleTranscriber) Transcribe(ctx context.Context, audio []byte, languageCode string) (Result, error) {
	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz: t.sampleRateHertz,
			LanguageCode:    languageCode,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}
	resp, err := t.client.Recognize(ctx, req)
	if err != nil {
		return Result{}, err
	}
	parts := make([]string, 0, len(resp.Results))
	var confidence float64
	for _, res := range resp.Results {
		if len(res.Alternatives) == 0 {
			continue
		}
		alt := res.Alternatives[0]
		parts = append(parts, alt.Transcript)
		if confidence == 0 {
			confidence = float64(alt.Confidence)
		}
	}
	return Result{
		Transcript: strings.TrimSpace(strings.Join(parts, " ")),
		Confidence: confidence,
	}, nil
}

func (t *GoogleTranscriber) Close() error {
	return t.client.Close()
}
