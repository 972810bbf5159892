// Printable room sign rendering.
//
// A sign is an A6-ish card with the room's location, its QR token and a
// short scanning hint, meant to be printed and stuck next to the door.
package qr

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"os"
	"runtime"

	"github.com/fogleman/gg"

	"roomcare/internal/errors"
	"roomcare/internal/request"
)

// Sign layout constants — rendered at 2x scale for print clarity
const (
	signWidth     = 620
	signHeight    = 840
	signPadding   = 50
	titleFontSz   = 42
	labelFontSz   = 30
	captionFontSz = 22
	qrTopOffset   = 220
)

// Sign colors
var (
	signBgColor      = color.RGBA{R: 255, G: 255, B: 255, A: 255} // White card
	signTitleColor   = color.RGBA{R: 30, G: 41, B: 59, A: 255}    // Dark slate
	signCaptionColor = color.RGBA{R: 100, G: 116, B: 139, A: 255} // Muted slate
	signBorderColor  = color.RGBA{R: 203, G: 213, B: 225, A: 255} // Slate border
)

// findFont locates a font file across Linux and Windows paths.
func findFont(bold bool) string {
	var candidates []string
	if runtime.GOOS == "windows" {
		winRoot := os.Getenv("WINDIR")
		if winRoot == "" {
			winRoot = `C:\Windows`
		}
		if bold {
			candidates = []string{
				winRoot + `\Fonts\arialbd.ttf`,
				winRoot + `\Fonts\Arial Bold.ttf`,
			}
		} else {
			candidates = []string{
				winRoot + `\Fonts\arial.ttf`,
				winRoot + `\Fonts\Arial.ttf`,
			}
		}
	} else {
		if bold {
			candidates = []string{
				"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
				"/usr/share/fonts/TTF/DejaVuSans-Bold.ttf",
			}
		} else {
			candidates = []string{
				"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
				"/usr/share/fonts/TTF/DejaVuSans.ttf",
			}
		}
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return candidates[0]
}

// RenderSign draws a printable door sign for the room and returns PNG bytes.
//
// Layout:
//   - Title: building and floor ("Корпус A · 02 этаж")
//   - Subtitle: room type name and number ("Туалет №001")
//   - QR token centered
//   - Caption: deep link URL and scanning hint
func (e *Encoder) RenderSign(room request.RoomRef, roomNumber int) ([]byte, error) {
	token, err := e.Encode(roomNumber)
	if err != nil {
		return nil, err
	}

	qrImg, err := png.Decode(bytes.NewReader(token.PNG))
	if err != nil {
		return nil, errors.NewEncodingError("failed to decode QR image", err)
	}

	dc := gg.NewContext(signWidth, signHeight)

	// Card background and border
	dc.SetColor(signBgColor)
	dc.Clear()
	dc.SetColor(signBorderColor)
	dc.SetLineWidth(3)
	dc.DrawRectangle(8, 8, signWidth-16, signHeight-16)
	dc.Stroke()

	boldFont := findFont(true)
	regularFont := findFont(false)

	// Title: building + floor
	if err := dc.LoadFontFace(boldFont, titleFontSz); err != nil {
		return nil, errors.NewEncodingError("failed to load bold font", err)
	}
	dc.SetColor(signTitleColor)
	title := fmt.Sprintf("Корпус %s · %s этаж", room.Building, room.Floor)
	dc.DrawStringAnchored(title, signWidth/2, signPadding+40, 0.5, 0.5)

	// Subtitle: room type and number
	if err := dc.LoadFontFace(regularFont, labelFontSz); err != nil {
		return nil, errors.NewEncodingError("failed to load regular font", err)
	}
	subtitle := fmt.Sprintf("%s №%s", room.TypeName(), room.Number)
	dc.DrawStringAnchored(subtitle, signWidth/2, signPadding+100, 0.5, 0.5)

	// QR token centered
	qrX := (signWidth - qrImg.Bounds().Dx()) / 2
	dc.DrawImage(qrImg, qrX, qrTopOffset)

	// Caption: URL and scanning hint
	if err := dc.LoadFontFace(regularFont, captionFontSz); err != nil {
		return nil, errors.NewEncodingError("failed to load caption font", err)
	}
	dc.SetColor(signCaptionColor)
	captionY := float64(qrTopOffset + qrImg.Bounds().Dy() + 70)
	dc.DrawStringAnchored(token.URL, signWidth/2, captionY, 0.5, 0.5)
	dc.DrawStringAnchored("Отсканируйте, чтобы сообщить о проблеме", signWidth/2, captionY+50, 0.5, 0.5)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, errors.NewEncodingError("failed to encode sign image", err)
	}

	return buf.Bytes(), nil
}
