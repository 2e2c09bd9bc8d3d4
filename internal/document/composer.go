// Package document renders programme and claim data into the portal's
// administrative documents: note orders, tentative budget annexures and
// claim-bill receipts. Output is PDF, written through an injected sink so
// the same composition code serves HTTP downloads and archived copies.
package document

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
)

// Sink receives composed document bytes. Write may be called many times as
// pages are emitted; the bytes are a complete document only after End
// returns nil. Callers must discard anything written when composition
// fails before End.
type Sink interface {
	Write(p []byte) (int, error)
	End() error
}

// BufferSink collects document bytes in memory
type BufferSink struct {
	buf   bytes.Buffer
	ended bool
}

func (s *BufferSink) Write(p []byte) (int, error) {
	return s.buf.Write(p)
}

func (s *BufferSink) End() error {
	s.ended = true
	return nil
}

// Bytes returns the collected document. It errors until End has been
// called, so a partially composed document can never be mistaken for a
// finished one.
func (s *BufferSink) Bytes() ([]byte, error) {
	if !s.ended {
		return nil, fmt.Errorf("document composition not complete")
	}
	return s.buf.Bytes(), nil
}

// Config holds the letterhead identity and layout constants shared by all
// composed documents
type Config struct {
	InstitutionName  string
	CentreName       string
	Place            string
	OverheadPercent  float64
	ReceiptSignatory string
}

// Composer renders programmes and claims into paginated PDF documents
type Composer struct {
	cfg    Config
	logger *zap.Logger
}

// NewComposer creates a new document composer
func NewComposer(cfg Config, logger *zap.Logger) *Composer {
	if cfg.OverheadPercent == 0 {
		cfg.OverheadPercent = 30
	}
	if cfg.ReceiptSignatory == "" {
		cfg.ReceiptSignatory = "HOD"
	}
	return &Composer{cfg: cfg, logger: logger}
}

// newPage returns an A4 portrait document with the standard margins
func (c *Composer) newPage() *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 16, 18)
	pdf.SetAutoPageBreak(true, 16)
	return pdf
}

// finish flushes the composed document through the sink. The sink's End is
// called only after the full byte stream was written successfully.
func (c *Composer) finish(pdf *gofpdf.Fpdf, sink Sink) error {
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("document composition failed: %w", err)
	}
	if err := pdf.Output(sinkWriter{sink}); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := sink.End(); err != nil {
		return fmt.Errorf("failed to finalize document: %w", err)
	}
	return nil
}

// sinkWriter adapts a Sink to io.Writer for gofpdf
type sinkWriter struct {
	sink Sink
}

func (w sinkWriter) Write(p []byte) (int, error) {
	return w.sink.Write(p)
}

// letterhead draws the institution header centered at the top of the
// current page
func (c *Composer) letterhead(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Times", "B", 14)
	pdf.CellFormat(0, 7, c.cfg.InstitutionName, "", 1, "C", false, 0, "")
	pdf.SetFont("Times", "B", 12)
	pdf.CellFormat(0, 6, c.cfg.CentreName, "", 1, "C", false, 0, "")
	if c.cfg.Place != "" {
		pdf.SetFont("Times", "", 11)
		pdf.CellFormat(0, 5, c.cfg.Place, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)
	x, y := pdf.GetX(), pdf.GetY()
	w, _ := pdf.GetPageSize()
	pdf.Line(x, y, w-18, y)
	pdf.Ln(4)
}
