package markitdown

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	rpdf "rsc.io/pdf"
)

// rscExtractor walks page content streams with rsc.io/pdf. It reads the
// operators itself rather than Page.Content, which drops spaces and decodes
// unmapped fonts through PDFDocEncoding before the codec could see the bytes.
type rscExtractor struct{}

func (rscExtractor) ExtractText(r io.ReadSeeker, codec Codec) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read PDF: %w", err)
	}

	doc, err := rpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}

	var out strings.Builder
	for i := 1; i <= doc.NumPage(); i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}
		text := strings.TrimSpace(rscPageText(page, codec))
		if text == "" {
			continue
		}
		out.WriteString(text)
		out.WriteString("\n\n")
	}
	return out.String(), nil
}

func rscOperand(v rpdf.Value) operand {
	switch v.Kind() {
	case rpdf.String:
		return operand{isString: true, raw: v.RawString()}
	case rpdf.Name:
		return operand{name: v.Name()}
	case rpdf.Integer, rpdf.Real:
		return operand{num: v.Float64()}
	case rpdf.Array:
		items := make([]operand, v.Len())
		for i := range items {
			items[i] = rscOperand(v.Index(i))
		}
		return operand{items: items}
	}
	return operand{}
}

func rscPageText(page rpdf.Page, codec Codec) string {
	fonts := map[string]textEncoder{}
	w := newContentWalker(codec, func(name string) textEncoder {
		if enc, ok := fonts[name]; ok {
			return enc
		}
		font := page.Font(name)
		encoding := font.V.Key("Encoding")
		var enc textEncoder
		if hasUnicodeMapping(font.V.Key("ToUnicode").Kind() == rpdf.Stream, encoding.Name(), encoding.Kind() == rpdf.Dict) {
			enc = font.Encoder().Decode
		}
		fonts[name] = enc
		return enc
	})

	interpret := func(stk *rpdf.Stack, op string) {
		args := make([]operand, stk.Len())
		for i := len(args) - 1; i >= 0; i-- {
			args[i] = rscOperand(stk.Pop())
		}
		w.apply(op, args)
	}

	contents := page.V.Key("Contents")
	if contents.Kind() == rpdf.Array {
		for i := 0; i < contents.Len(); i++ {
			rpdf.Interpret(contents.Index(i), interpret)
			w.newline()
		}
	} else {
		rpdf.Interpret(contents, interpret)
	}
	return w.text()
}
