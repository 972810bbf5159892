// Package sheets implements the spreadsheet ledger sink.
//
// This package handles:
//   - Service-account authentication against the Google Sheets API
//   - Idempotent creation of the ledger header row on first use
//   - Appending each maintenance request as the newest ledger row,
//     inserted directly below the header (row 2), never at the bottom
//
// A missing credentials file or sheet ID is not a fault: the sink reports
// a failed outcome per call and the dispatcher carries on.
package sheets

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2/google"

	apperrors "roomcare/internal/errors"
	"roomcare/internal/request"
	"roomcare/internal/sink"
)

// SinkName identifies this sink in dispatch outcomes.
const SinkName = "sheets"

// defaultAPIBase is the production Sheets v4 endpoint.
const defaultAPIBase = "https://sheets.googleapis.com/v4/spreadsheets"

// spreadsheetScope is the OAuth scope required to edit the ledger.
const spreadsheetScope = "https://www.googleapis.com/auth/spreadsheets"

// headerRow describes the nine ledger columns, written once at row 1.
var headerRow = []string{
	"Дата", "Время", "Корпус", "Этаж", "Тип помещения",
	"Номер", "Проблема", "Описание", "Статус",
}

// initialStatus is the fixed status value every new ledger entry gets.
const initialStatus = "Новая"

// Client represents the Google Sheets ledger sink.
//
// Thread-safety:
//   - The header check is guarded by a mutex so concurrent first calls
//     write the header at most once
//   - Row insertion relies on the Sheets API's own concurrency behavior;
//     concurrent submissions may interleave insert order, which is fine
//     since every entry carries its own timestamp
type Client struct {
	sheetID   string
	DebugMode bool
	http      *resty.Client

	mu          sync.Mutex
	headerReady bool
}

// NewClient creates the ledger sink from a service-account credentials file.
//
// A missing sheet ID or unreadable credentials file does not fail
// construction: the sink is created unconfigured and every Attempt
// reports a soft failure instead.
//
// Parameters:
//   - credentialsFile: Path to the service-account JSON key
//   - sheetID: Spreadsheet ID of the ledger
//   - timeout: Outbound HTTP timeout
//   - debug: If true, API calls are simulated
func NewClient(credentialsFile, sheetID string, timeout time.Duration, debug bool) *Client {
	c := &Client{sheetID: sheetID, DebugMode: debug}

	if sheetID == "" {
		log.Println("⚠️  GOOGLE_SHEET_ID not set. Sheets ledger disabled.")
		return c
	}

	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		log.Printf("⚠️  Google credentials file not found: %s. Sheets ledger disabled.", credentialsFile)
		return c
	}

	jwtCfg, err := google.JWTConfigFromJSON(data, spreadsheetScope)
	if err != nil {
		log.Printf("⚠️  Invalid Google credentials: %v. Sheets ledger disabled.", err)
		return c
	}

	c.http = resty.NewWithClient(jwtCfg.Client(context.Background())).
		SetBaseURL(defaultAPIBase).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	log.Println("✓ Google Sheets configured successfully")
	return c
}

// SetBaseURL overrides the API endpoint and marks the sink configured.
// Used by tests to point the sink at a stub server.
func (c *Client) SetBaseURL(base string) {
	if c.http == nil {
		c.http = resty.New()
	}
	c.http.SetBaseURL(base)
}

// Name identifies the sink in dispatch outcomes.
func (c *Client) Name() string {
	return SinkName
}

// configured reports whether the sink can reach the Sheets API.
func (c *Client) configured() bool {
	return c.http != nil && c.sheetID != ""
}

// Attempt appends the record to the ledger as the newest entry.
//
// Steps:
//  1. Ensure the header row exists (idempotent, first call only)
//  2. Insert a blank row at index 2 (directly below the header)
//  3. Write the nine record fields into the new row
//
// Outcomes:
//   - Not configured: soft skip, failed outcome "not configured"
//   - Debug mode: simulated success, nothing is written
//   - API/network error: failed outcome with the diagnostic detail
//   - Otherwise: success
func (c *Client) Attempt(ctx context.Context, rec *request.Record) sink.Outcome {
	if !c.configured() {
		log.Println("   ⚠️  Google Sheets not configured, skipping ledger write")
		return sink.Fail(SinkName, "not configured")
	}

	if c.DebugMode {
		log.Printf("   🐛 DEBUG: would append ledger row for room %s", rec.Room.Number)
		return sink.Succeed(SinkName)
	}

	if err := c.ensureHeader(ctx); err != nil {
		return sink.Fail(SinkName, err.Error())
	}

	log.Println("   📋 Appending request to Google Sheets...")

	if err := c.insertRow(ctx, rec); err != nil {
		return sink.Fail(SinkName, err.Error())
	}

	log.Println("   ✓ Request successfully added to Google Sheets")
	return sink.Succeed(SinkName)
}

// valueRange mirrors the Sheets API ValueRange resource.
type valueRange struct {
	Range  string     `json:"range,omitempty"`
	Values [][]string `json:"values,omitempty"`
}

// ensureHeader writes the column headers at row 1 if they are missing.
//
// Idempotent: once the header is observed (or written) the check is
// skipped for the lifetime of the process. Concurrent first submissions
// are serialized so the header is written at most once.
func (c *Client) ensureHeader(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.headerReady {
		return nil
	}

	var existing valueRange
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&existing).
		Get(fmt.Sprintf("/%s/values/A1:I1", c.sheetID))
	if err != nil {
		return apperrors.NewSinkUnavailableError(SinkName, "header check failed", err)
	}
	if resp.IsError() {
		return apperrors.NewSinkUnavailableError(SinkName,
			fmt.Sprintf("header check failed: %s", resp.Status()), nil)
	}

	if len(existing.Values) == 0 {
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParam("valueInputOption", "RAW").
			SetBody(valueRange{Values: [][]string{headerRow}}).
			Put(fmt.Sprintf("/%s/values/A1:I1", c.sheetID))
		if err != nil {
			return apperrors.NewSinkUnavailableError(SinkName, "header write failed", err)
		}
		if resp.IsError() {
			return apperrors.NewSinkUnavailableError(SinkName,
				fmt.Sprintf("header write failed: %s", resp.Status()), nil)
		}
		log.Println("   ✓ Ledger header row created")
	}

	c.headerReady = true
	return nil
}

// insertRow makes room at row 2 and writes the record there, keeping the
// newest entry directly under the header.
//
// Two API calls: a failure between the dimension insert and the value
// write leaves a blank row 2 in the ledger. The attempt still reports
// failure, and the next successful submission writes above the gap.
func (c *Client) insertRow(ctx context.Context, rec *request.Record) error {
	insert := map[string]any{
		"requests": []any{
			map[string]any{
				"insertDimension": map[string]any{
					"range": map[string]any{
						"sheetId":    0,
						"dimension":  "ROWS",
						"startIndex": 1,
						"endIndex":   2,
					},
					"inheritFromBefore": false,
				},
			},
		},
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(insert).
		Post(fmt.Sprintf("/%s:batchUpdate", c.sheetID))
	if err != nil {
		return apperrors.NewSinkUnavailableError(SinkName, "row insert failed", err)
	}
	if resp.IsError() {
		return apperrors.NewSinkUnavailableError(SinkName,
			fmt.Sprintf("row insert failed: %s", resp.Status()), nil)
	}

	row := []string{
		rec.Date,
		rec.Time,
		rec.Room.Building,
		rec.Room.Floor,
		rec.Room.Type,
		rec.Room.Number,
		rec.Problem,
		rec.Description,
		initialStatus,
	}

	resp, err = c.http.R().
		SetContext(ctx).
		SetQueryParam("valueInputOption", "USER_ENTERED").
		SetBody(valueRange{Values: [][]string{row}}).
		Put(fmt.Sprintf("/%s/values/A2:I2", c.sheetID))
	if err != nil {
		return apperrors.NewSinkUnavailableError(SinkName, "row write failed", err)
	}
	if resp.IsError() {
		return apperrors.NewSinkUnavailableError(SinkName,
			fmt.Sprintf("row write failed: %s", resp.Status()), nil)
	}

	return nil
}
