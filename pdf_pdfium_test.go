//go:build !nopdfium

package markitdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPdfiumBackend(t *testing.T) {
	if testing.Short() {
		t.Skip("starts the pdfium WebAssembly runtime")
	}

	m := New(WithPDFBackend(BackendPdfium))

	t.Run("ascii", func(t *testing.T) {
		result, err := m.ConvertFile("testdata/test.pdf")
		require.NoError(t, err)
		assert.Contains(t, result.Markdown, "MarkItDown PDF test")
		assert.Contains(t, result.Markdown, "Second page")
	})

	t.Run("windows-1252", func(t *testing.T) {
		result, err := m.ConvertFile("testdata/test_cp1252.pdf")
		require.NoError(t, err)
		// pdfium decodes the unembedded Helvetica through its built-in
		// StandardEncoding, where 0xA9 is quotesingle rather than ©.
		assert.Equal(t, "mit dem Modul „Ausgangspunkt klären“ zu beginnen\n' 2025 – Preis: 100 €", result.Markdown)
	})
}
