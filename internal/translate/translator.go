// Package translate provides optional description translation for chat alerts.
//
// Occupants write free-text descriptions in whatever language they use;
// the facilities channel reads Russian. When a Google Cloud Translation
// API key is configured, descriptions are translated before the Telegram
// alert is formatted.
//
// Graceful degradation: if the API key is not set, translation is
// disabled. Translation errors fall back to the original text so an
// alert is never lost to a translation failure.
package translate

import (
	"context"
	"log"

	"cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// Translator wraps the Cloud Translation client.
//
// A nil *Translator is valid and translates nothing (graceful degradation).
type Translator struct {
	client *translate.Client
	target language.Tag
}

// NewTranslator creates a Translator targeting Russian.
//
// Returns nil if apiKey is empty (graceful degradation).
func NewTranslator(ctx context.Context, apiKey string) (*Translator, error) {
	if apiKey == "" {
		log.Println("⚠️  GOOGLE_TRANSLATE_API_KEY not set. Description translation disabled.")
		return nil, nil
	}

	client, err := translate.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	log.Println("✓ Description translation configured successfully")

	return &Translator{client: client, target: language.Russian}, nil
}

// Translate converts text to the target language.
//
// Returns the original text unchanged when the translator is nil, the
// text is empty, or the API call fails.
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	if t == nil || text == "" {
		return text, nil
	}

	resp, err := t.client.Translate(ctx, []string{text}, t.target, nil)
	if err != nil {
		log.Printf("⚠️  Translation failed, sending original text: %v", err)
		return text, nil
	}
	if len(resp) == 0 || resp[0].Text == "" {
		return text, nil
	}

	return resp[0].Text, nil
}

// Close releases the underlying API client.
func (t *Translator) Close() error {
	if t == nil || t.client == nil {
		return nil
	}
	return t.client.Close()
}
