package certificate

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
)

// Renderer draws certificate templates onto a landscape A4 page
type Renderer struct {
	logger *zap.Logger
}

// NewRenderer creates a new certificate renderer
func NewRenderer(logger *zap.Logger) *Renderer {
	return &Renderer{logger: logger}
}

// Render draws every field of the template with the supplied values and
// returns the document bytes in the template's declared output format,
// along with the matching MIME type.
func (r *Renderer) Render(tpl *Template, values map[string]string) ([]byte, string, error) {
	r.logger.Info("Rendering certificate",
		zap.String("template", tpl.ID),
		zap.String("output", tpl.Output))

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	pdf.SetLineWidth(0.8)
	pdf.SetDrawColor(120, 100, 40)
	pdf.Rect(8, 8, pageW-16, pageH-16, "D")

	for _, field := range tpl.Fields {
		r.drawField(pdf, field, values)
	}

	if err := pdf.Error(); err != nil {
		return nil, "", fmt.Errorf("certificate rendering failed: %w", err)
	}

	pdfBytes, err := outputBytes(pdf)
	if err != nil {
		return nil, "", err
	}

	if tpl.Output == OutputPNG {
		pngBytes, err := pdfToPNG(pdfBytes)
		if err != nil {
			return nil, "", fmt.Errorf("failed to rasterize certificate: %w", err)
		}
		return pngBytes, "image/png", nil
	}

	return pdfBytes, "application/pdf", nil
}

// drawField draws one text field at its declared position, applying the
// declared transforms in order: placeholder expansion, uppercase, letter
// spacing, then rotation and opacity for watermark-style fields.
func (r *Renderer) drawField(pdf *gofpdf.Fpdf, field TextField, values map[string]string) {
	text := expand(field.Format, values)
	if field.Uppercase {
		text = strings.ToUpper(text)
	}
	if field.LetterSpacing > 0 {
		text = spaceOut(text, field.LetterSpacing)
	}

	font := field.Font
	if font == "" {
		font = "Times"
	}
	pdf.SetFont(font, field.Style, field.Size)
	pdf.SetTextColor(field.Color.R, field.Color.G, field.Color.B)

	x := field.X
	width := pdf.GetStringWidth(text)
	switch field.Align {
	case "C":
		x -= width / 2
	case "R":
		x -= width
	}

	transformed := field.Rotation != 0
	if transformed {
		pdf.TransformBegin()
		pdf.TransformRotate(field.Rotation, field.X, field.Y)
	}
	if field.Opacity > 0 && field.Opacity < 1 {
		pdf.SetAlpha(field.Opacity, "Normal")
	}

	pdf.Text(x, field.Y, text)

	if field.Opacity > 0 && field.Opacity < 1 {
		pdf.SetAlpha(1, "Normal")
	}
	if transformed {
		pdf.TransformEnd()
	}
}

// expand substitutes {key} placeholders from the field-value map. Unknown
// placeholders render as empty text rather than failing the certificate.
func expand(format string, values map[string]string) string {
	out := format
	for key, value := range values {
		out = strings.ReplaceAll(out, "{"+key+"}", value)
	}
	// drop unresolved placeholders
	for {
		start := strings.Index(out, "{")
		if start < 0 {
			break
		}
		end := strings.Index(out[start:], "}")
		if end < 0 {
			break
		}
		out = out[:start] + out[start+end+1:]
	}
	return out
}

// spaceOut inserts n spaces between every rune for letter-spaced headings
func spaceOut(s string, n int) string {
	runes := []rune(s)
	if len(runes) < 2 {
		return s
	}
	gap := strings.Repeat(" ", n)
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = string(r)
	}
	return strings.Join(parts, gap)
}

func outputBytes(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to emit certificate bytes: %w", err)
	}
	return buf.Bytes(), nil
}
