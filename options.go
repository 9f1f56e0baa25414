package markitdown

import "log/slog"

// Option configures a MarkItDown instance.
type Option func(*MarkItDown)

// WithPDFBackend selects the PDF text extraction backend by name
// ("native", "rsc" or "pdfium"). The default is "native".
func WithPDFBackend(name string) Option {
	return func(m *MarkItDown) {
		m.pdfBackend = name
	}
}

// WithLogger sets the logger used by converters. Nothing is logged by default.
func WithLogger(logger *slog.Logger) Option {
	return func(m *MarkItDown) {
		m.logger = logger
	}
}
