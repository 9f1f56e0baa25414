//go:build nopdfium

package markitdown

import "errors"

var errPdfiumNotCompiled = errors.New("pdfium support was compiled out (built with -tags nopdfium)")

func loadPdfium() (TextExtractor, error) {
	return nil, errPdfiumNotCompiled
}
