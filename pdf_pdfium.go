//go:build !nopdfium

package markitdown

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/klippa-app/go-pdfium/responses"
	"github.com/klippa-app/go-pdfium/webassembly"
)

// loadPdfium starts the WebAssembly pdfium runtime. It is called at most
// once per process by the backend registry.
func loadPdfium() (TextExtractor, error) {
	pool, err := webassembly.Init(webassembly.Config{
		MinIdle:  1,
		MaxIdle:  1,
		MaxTotal: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("init pdfium: %w", err)
	}
	return &pdfiumExtractor{pool: pool}, nil
}

// pdfiumExtractor extracts page text with PDFium.
type pdfiumExtractor struct {
	pool pdfium.Pool
}

func (e *pdfiumExtractor) ExtractText(r io.ReadSeeker, codec Codec) (string, error) {
	instance, err := e.pool.GetInstance(30 * time.Second)
	if err != nil {
		return "", fmt.Errorf("get pdfium instance: %w", err)
	}
	defer instance.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read PDF: %w", err)
	}

	doc, err := instance.OpenDocument(&requests.OpenDocument{
		File: &data,
	})
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}
	defer instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	pageCountResp, err := instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
		Document: doc.Document,
	})
	if err != nil {
		return "", fmt.Errorf("get page count: %w", err)
	}

	var out strings.Builder
	for i := 0; i < pageCountResp.PageCount; i++ {
		text, err := pdfiumPageText(instance, doc, i)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i+1, err)
		}
		text = strings.TrimSpace(redecode(text, codec))
		if text == "" {
			continue
		}
		out.WriteString(text)
		out.WriteString("\n\n")
	}
	return out.String(), nil
}

func pdfiumPageText(instance pdfium.Pdfium, doc *responses.OpenDocument, pageIdx int) (string, error) {
	textResp, err := instance.GetPageText(&requests.GetPageText{
		Page: requests.Page{
			ByIndex: &requests.PageByIndex{
				Document: doc.Document,
				Index:    pageIdx,
			},
		},
	})
	if err != nil {
		return "", err
	}
	return textResp.Text, nil
}
