// Package qr generates scannable room-identification tokens.
//
// A token is a deterministic deep link to a room's report form plus a QR
// image of that link, sized for print and scan use. Encoding is a pure
// function of the configured base address and the room number; the same
// room always yields the same URL and an equivalent image.
package qr

import (
	"encoding/base64"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"roomcare/internal/errors"
)

// imageSize is the rendered QR edge length in pixels.
//
// A version-1 code with its quiet zone spans 29 modules; 290px keeps
// 10px per module, comfortable for office printers.
const imageSize = 290

// Token is one generated room token.
type Token struct {
	URL string // deep link to the room's report form
	PNG []byte // scannable QR image of the URL
}

// DataURI returns the image as a base64 PNG data URI for embedding in
// JSON responses and HTML pages.
func (t *Token) DataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(t.PNG)
}

// Encoder builds room tokens against a fixed base address.
type Encoder struct {
	baseURL string
}

// NewEncoder creates a token encoder for the given base address.
func NewEncoder(baseURL string) *Encoder {
	return &Encoder{baseURL: strings.TrimRight(baseURL, "/")}
}

// DeepLink returns the report-form URL for a room number.
func (e *Encoder) DeepLink(roomNumber int) string {
	return fmt.Sprintf("%s/room/%d", e.baseURL, roomNumber)
}

// Encode builds the deep link for a room and renders it as a QR image.
//
// Error-correction level Low matches the short, redundancy-free URLs
// being encoded. Failures wrap into an EncodingError.
func (e *Encoder) Encode(roomNumber int) (*Token, error) {
	url := e.DeepLink(roomNumber)

	png, err := qrcode.Encode(url, qrcode.Low, imageSize)
	if err != nil {
		return nil, errors.NewEncodingError(fmt.Sprintf("failed to encode %q", url), err)
	}

	return &Token{URL: url, PNG: png}, nil
}
