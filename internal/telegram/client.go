// Package telegram implements the chat notification sink.
//
// This package handles:
//   - Rendering a maintenance request into a formatted HTML alert
//   - Submitting the alert to the Telegram Bot API (sendMessage)
//   - Soft-skipping when the bot token or chat ID is not configured
//
// A missing configuration is not a fault: the sink reports a failed
// outcome for the call and the dispatcher carries on with the other
// sinks.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"roomcare/internal/request"
	"roomcare/internal/sink"
)

// SinkName identifies this sink in dispatch outcomes.
const SinkName = "telegram"

// defaultAPIBase is the production Telegram Bot API endpoint.
const defaultAPIBase = "https://api.telegram.org"

// Translator optionally rewrites the free-text description before the
// alert is formatted. Implementations must degrade gracefully; the sink
// falls back to the original text on any error.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Client represents the Telegram chat sink.
//
// Thread-safety:
//   - All fields are fixed at construction; safe for concurrent Attempt calls
//
// Fields:
//   - BotToken: Telegram bot API token from @BotFather
//   - ChatID: Target chat ID for alerts
//   - DebugMode: If true, skip actual API calls (for testing)
type Client struct {
	BotToken   string
	ChatID     string
	DebugMode  bool
	apiBase    string
	httpClient *http.Client
	translator Translator
}

// Message represents a Telegram message for sending.
type Message struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// NewClient creates the Telegram chat sink.
//
// An empty bot token or chat ID does not fail construction: the sink is
// created unconfigured and every Attempt reports a soft failure instead.
//
// Parameters:
//   - botToken: Bot API token, may be empty
//   - chatID: Target chat ID, may be empty
//   - timeout: Outbound HTTP timeout
//   - debug: If true, API calls are simulated
func NewClient(botToken, chatID string, timeout time.Duration, debug bool) *Client {
	if botToken == "" || chatID == "" {
		log.Println("⚠️  TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID not set. Telegram alerts disabled.")
		if botToken == "" {
			log.Println("   → Missing: TELEGRAM_BOT_TOKEN")
		}
		if chatID == "" {
			log.Println("   → Missing: TELEGRAM_CHAT_ID")
		}
	} else {
		log.Println("✓ Telegram configured successfully")
	}

	return &Client{
		BotToken:   botToken,
		ChatID:     chatID,
		DebugMode:  debug,
		apiBase:    defaultAPIBase,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetTranslator installs an optional description translator.
func (c *Client) SetTranslator(t Translator) {
	c.translator = t
}

// Name identifies the sink in dispatch outcomes.
func (c *Client) Name() string {
	return SinkName
}

// configured reports whether the sink has credentials to work with.
func (c *Client) configured() bool {
	return c.BotToken != "" && c.ChatID != ""
}

// Attempt renders the record into an alert and sends it to the chat.
//
// Outcomes:
//   - Not configured: soft skip, failed outcome "not configured"
//   - Debug mode: simulated success, nothing is sent
//   - API/network error: failed outcome with the diagnostic detail
//   - Otherwise: success
func (c *Client) Attempt(ctx context.Context, rec *request.Record) sink.Outcome {
	if !c.configured() {
		log.Println("   ⚠️  Telegram not configured, skipping alert")
		return sink.Fail(SinkName, "not configured")
	}

	text := c.FormatAlert(ctx, rec)

	if c.DebugMode {
		log.Printf("   🐛 DEBUG: would send Telegram alert for room %s", rec.Room.Number)
		return sink.Succeed(SinkName)
	}

	log.Println("   📨 Sending alert to Telegram...")

	msg := Message{
		ChatID:                c.ChatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	}

	if err := c.sendMessage(ctx, msg); err != nil {
		return sink.Fail(SinkName, err.Error())
	}

	log.Println("   ✓ Alert successfully sent to Telegram")
	return sink.Succeed(SinkName)
}

// FormatAlert renders the maintenance request as an HTML chat message.
//
// Format:
//
//	🚨 Новая заявка на обслуживание
//	📍 Помещение: Корпус A, 02 этаж, WC №001
//	🔧 Проблема: 🧼 Закончилось мыло
//	📝 Описание: ... (or "Не указано")
//	📅 Дата / 🕐 Время
//	#заявка #помещение001
func (c *Client) FormatAlert(ctx context.Context, rec *request.Record) string {
	description := rec.Description
	if c.translator != nil && description != "" {
		if translated, err := c.translator.Translate(ctx, description); err == nil && translated != "" {
			description = translated
		}
	}
	if description == "" {
		description = "Не указано"
	}

	return fmt.Sprintf(
		"🚨 <b>Новая заявка на обслуживание</b>\n\n"+
			"📍 <b>Помещение:</b> Корпус %s, %s этаж, %s №%s\n"+
			"🔧 <b>Проблема:</b> %s\n"+
			"📝 <b>Описание:</b> %s\n"+
			"📅 <b>Дата:</b> %s\n"+
			"🕐 <b>Время:</b> %s\n\n"+
			"#заявка #помещение%s",
		rec.Room.Building,
		rec.Room.Floor,
		rec.Room.Type,
		rec.Room.Number,
		rec.Problem,
		description,
		rec.Date,
		rec.Time,
		rec.Room.Number,
	)
}

// sendMessage posts a sendMessage call to the Bot API.
//
// Features:
//   - JSON marshaling
//   - HTTP POST with proper headers
//   - Error response parsing ("ok" field check)
func (c *Client) sendMessage(ctx context.Context, msg Message) error {
	jsonData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	apiURL := fmt.Sprintf("%s/bot%s/sendMessage", c.apiBase, c.BotToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("Telegram API error: %s", result.Description)
	}

	return nil
}
