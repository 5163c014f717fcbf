package translate

import (
	"context"
	"fmt"
	"html"

	translate "cloud.google.com/go/translate/apiv3"
	"google.golang.org/api/option"
	translatepb "google.golang.org/genproto/googleapis/cloud/translate/v3"
)

// GoogleTranslator translates text via the Cloud Translate v3 API.
type GoogleTranslator struct {
	client    *translate.TranslationClient
	projectId string
}

func NewGoogleTranslator(ctx context.Context, projectId, credentialsFile string) (*GoogleTranslator, error) {
	opts := make([]option.ClientOption, 0, 1)
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := translate.NewTranslationClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &GoogleTranslator{
		client:    client,
		projectId: projectId,
	}, nil
}

func (t *GoogleTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	req := &translatepb.TranslateTextRequest{
		Contents:           []string{text},
		MimeType:           "text/plain",
		SourceLanguageCode: sourceLang,
		TargetLanguageCode: targetLang,
		Parent:             fmt.Sprintf("projects/%s/locations/global", t.projectId),
	}
	resp, err := t.client.TranslateText(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Translations) == 0 {
		return "", fmt.Errorf("no translation returned for %q -> %q", sourceLang, targetLang)
	}
	return html.UnescapeString(resp.Translations[0].TranslatedText), nil
}

func (t *GoogleTranslator) Close() error {
	return t.client.Close()
}
