package markitdown

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// nativeExtractor walks page content streams with github.com/ledongthuc/pdf.
// Strings drawn with a font that has a Unicode mapping are decoded by the
// library; all other strings are decoded from their raw bytes with the codec.
type nativeExtractor struct{}

func (nativeExtractor) ExtractText(r io.ReadSeeker, codec Codec) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read PDF: %w", err)
	}

	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}

	var out strings.Builder
	for i := 1; i <= pdfReader.NumPage(); i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text := strings.TrimSpace(nativePageText(page, codec))
		if text == "" {
			continue
		}
		out.WriteString(text)
		out.WriteString("\n\n")
	}
	return out.String(), nil
}

func nativeOperand(v pdf.Value) operand {
	switch v.Kind() {
	case pdf.String:
		return operand{isString: true, raw: v.RawString()}
	case pdf.Name:
		return operand{name: v.Name()}
	case pdf.Integer, pdf.Real:
		return operand{num: v.Float64()}
	case pdf.Array:
		items := make([]operand, v.Len())
		for i := range items {
			items[i] = nativeOperand(v.Index(i))
		}
		return operand{items: items}
	}
	return operand{}
}

func nativePageText(page pdf.Page, codec Codec) string {
	fonts := map[string]textEncoder{}
	w := newContentWalker(codec, func(name string) textEncoder {
		if enc, ok := fonts[name]; ok {
			return enc
		}
		font := page.Font(name)
		encoding := font.V.Key("Encoding")
		var enc textEncoder
		if hasUnicodeMapping(font.V.Key("ToUnicode").Kind() == pdf.Stream, encoding.Name(), encoding.Kind() == pdf.Dict) {
			enc = font.Encoder().Decode
		}
		fonts[name] = enc
		return enc
	})

	interpret := func(stk *pdf.Stack, op string) {
		args := make([]operand, stk.Len())
		for i := len(args) - 1; i >= 0; i-- {
			args[i] = nativeOperand(stk.Pop())
		}
		w.apply(op, args)
	}

	contents := page.V.Key("Contents")
	if contents.Kind() == pdf.Array {
		for i := 0; i < contents.Len(); i++ {
			pdf.Interpret(contents.Index(i), interpret)
			w.newline()
		}
	} else {
		pdf.Interpret(contents, interpret)
	}
	return w.text()
}
