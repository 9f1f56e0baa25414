package markitdown

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

var (
	acceptedPDFExtensions   = []string{".pdf"}
	acceptedPDFMIMEPrefixes = []string{"application/pdf", "application/x-pdf"}
)

// PdfConverter converts PDFs to Markdown. Style and layout are dropped, so
// the result is essentially plain text.
type PdfConverter struct {
	extractor TextExtractor
	feature   string
	loadErr   error
	logger    *slog.Logger
}

// NewPdfConverter creates a PdfConverter using the backend configured on m.
// A nil m selects the default backend. A backend that fails to load does
// not fail construction; Convert reports it instead.
func NewPdfConverter(m *MarkItDown) *PdfConverter {
	backend := DefaultPDFBackend
	logger := slog.New(slog.DiscardHandler)
	if m != nil {
		if m.pdfBackend != "" {
			backend = m.pdfBackend
		}
		if m.logger != nil {
			logger = m.logger
		}
	}

	extractor, feature, err := lookupPDFBackend(backend)
	return &PdfConverter{
		extractor: extractor,
		feature:   feature,
		loadErr:   err,
		logger:    logger.With("converter", "pdf", "backend", backend),
	}
}

func (c *PdfConverter) Accepts(info StreamInfo) bool {
	ext := strings.ToLower(info.Extension)
	for _, e := range acceptedPDFExtensions {
		if ext == e {
			return true
		}
	}
	mime := strings.ToLower(info.MIMEType)
	for _, prefix := range acceptedPDFMIMEPrefixes {
		if strings.HasPrefix(mime, prefix) {
			return true
		}
	}
	return false
}

// Convert extracts the text once per candidate codec and returns the first
// result free of replacement characters. When every candidate fails, the
// text of a plain default extraction is returned as is.
func (c *PdfConverter) Convert(reader io.ReadSeeker, info StreamInfo) (*DocumentConverterResult, error) {
	if c.loadErr != nil {
		return nil, &MissingDependencyError{
			Converter: "PdfConverter",
			Extension: ".pdf",
			Feature:   c.feature,
			Err:       c.loadErr,
		}
	}

	for _, codec := range codecCandidates() {
		if _, err := reader.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("seek: %w", err)
		}

		attempt := c.attempt(reader, codec)
		if attempt.clean() {
			c.logger.Debug("extracted PDF text", "codec", codec.Name, "bytes", len(attempt.text))
			return &DocumentConverterResult{Markdown: attempt.text}, nil
		}
		if attempt.err != nil {
			c.logger.Debug("codec attempt failed", "codec", codec.Name, "error", attempt.err)
		} else {
			c.logger.Debug("codec attempt produced replacement characters", "codec", codec.Name)
		}
	}

	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek: %w", err)
	}
	final := c.attempt(reader, DefaultCodec)
	if final.err != nil {
		return nil, fmt.Errorf("extract PDF text: %w", final.err)
	}
	c.logger.Debug("no codec produced clean text, using default extraction", "codec", DefaultCodec.Name)
	return &DocumentConverterResult{Markdown: final.text}, nil
}

// codecAttempt is the outcome of extracting with one codec.
type codecAttempt struct {
	codec Codec
	text  string
	err   error
}

func (a codecAttempt) clean() bool {
	return a.err == nil && !containsReplacement(a.text)
}

// attempt runs the extractor with codec. Parser panics become errors.
func (c *PdfConverter) attempt(reader io.ReadSeeker, codec Codec) (a codecAttempt) {
	a.codec = codec
	defer func() {
		if r := recover(); r != nil {
			a.text = ""
			a.err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()
	a.text, a.err = c.extractor.ExtractText(reader, codec)
	return a
}
