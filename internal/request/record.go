// Package request defines the canonical maintenance request model.
//
// A raw Submission arrives from the web form, is validated and normalized
// exactly once, and becomes an immutable Record that every notification
// sink receives by shared read-only reference. The record is not retained
// after dispatch; persistence is the sinks' responsibility.
package request

import (
	"strings"
	"time"

	"roomcare/internal/errors"
)

// RoomRef identifies a physical location inside the facility.
//
// Fields:
//   - Building: Short building code (e.g., "A")
//   - Floor: Zero-padded floor string (e.g., "02")
//   - Type: Room type code (e.g., "WC"), see RoomTypeNames
//   - Number: Zero-padded room number, unique within a building
type RoomRef struct {
	Building string `json:"building"`
	Floor    string `json:"floor"`
	Type     string `json:"type"`
	Number   string `json:"number"`
}

// Complete reports whether all four fields of the room reference are set.
//
// A record is only ever constructed over a complete reference; a partial
// one counts as a missing room during validation.
func (r RoomRef) Complete() bool {
	return r.Building != "" && r.Floor != "" && r.Type != "" && r.Number != ""
}

// TypeName returns the human-readable name for the room type code.
//
// Unknown codes are returned verbatim so new room types degrade
// gracefully instead of being rejected.
func (r RoomRef) TypeName() string {
	if name, ok := RoomTypeNames[r.Type]; ok {
		return name
	}
	return r.Type
}

// ProblemLabels maps problem kind codes to their human-readable labels.
//
// The labels are what occupants see in the form and what both sinks
// record. Codes not in this map pass through verbatim as their own
// label (graceful degradation, not rejection).
var ProblemLabels = map[string]string{
	"soap":        "🧼 Закончилось мыло",
	"paper":       "🧻 Закончились бумажные принадлежности",
	"trash":       "🗑️ Вынести мусор",
	"cleaning":    "🧽 Прибраться",
	"plumbing":    "🚰 Проблемы с сантехникой",
	"electricity": "💡 Проблемы с электричеством",
	"heating":     "🔥 Проблемы с отоплением",
	"other":       "📝 Другая проблема",
}

// RoomTypeNames maps room type codes to their human-readable names.
var RoomTypeNames = map[string]string{
	"WC":       "Туалет",
	"KITCHEN":  "Кухня",
	"OFFICE":   "Офис",
	"MEETING":  "Переговорная",
	"STORAGE":  "Склад",
	"CORRIDOR": "Коридор",
	"LOBBY":    "Холл",
}

// ProblemLabel resolves a problem kind code to its label.
//
// Unknown codes are kept verbatim as their own label.
func ProblemLabel(code string) string {
	if label, ok := ProblemLabels[code]; ok {
		return label
	}
	return code
}

// Submission is the raw inbound payload of the submit endpoint.
//
// Either Room or RoomNumber identifies the location: a full RoomRef is
// used as-is, a bare room number is resolved through the room catalog
// before validation.
type Submission struct {
	Room        *RoomRef `json:"room,omitempty"`
	RoomNumber  int      `json:"room_number,omitempty"`
	ProblemKind string   `json:"problem_type"`
	Description string   `json:"description,omitempty"`
}

// Record is the canonical, validated maintenance request.
//
// Immutable once constructed. The timestamp is captured exactly once at
// construction; Date and Time are display projections of it and
// Timestamp is the machine-sortable RFC 3339 form.
type Record struct {
	Room        RoomRef
	Problem     string // resolved problem label
	Description string // free text, empty when not provided
	SubmittedAt time.Time
	Date        string // 02.01.2006
	Time        string // 15:04:05
	Timestamp   string // RFC 3339
}

// NewRecord validates a submission and constructs the canonical record.
//
// Validation:
//   - Room reference must be present with all four fields non-empty
//   - Problem kind code must be present and non-empty
//   - ALL missing fields are reported in a single ValidationError
//
// Normalization:
//   - Problem kind code resolves to its label; unknown codes stay verbatim
//   - Missing description becomes the empty string
//   - The clock is read exactly once (the now argument)
//
// Returns:
//   - *Record: Immutable validated record
//   - error: *errors.ValidationError naming every missing field
func NewRecord(sub Submission, now time.Time) (*Record, error) {
	var missing []string
	if sub.Room == nil || !sub.Room.Complete() {
		missing = append(missing, "room")
	}
	if strings.TrimSpace(sub.ProblemKind) == "" {
		missing = append(missing, "problem_type")
	}
	if len(missing) > 0 {
		return nil, errors.NewValidationError(missing...)
	}

	return &Record{
		Room:        *sub.Room,
		Problem:     ProblemLabel(sub.ProblemKind),
		Description: strings.TrimSpace(sub.Description),
		SubmittedAt: now,
		Date:        now.Format("02.01.2006"),
		Time:        now.Format("15:04:05"),
		Timestamp:   now.Format(time.RFC3339),
	}, nil
}
