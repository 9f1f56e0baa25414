package markitdown

import "strings"

// operand is a content-stream operand converted out of a parser's own
// value type, so the text walk can be shared between backends.
type operand struct {
	isString bool
	raw      string
	name     string
	num      float64
	items    []operand
}

// textEncoder turns the raw bytes of a shown string into text.
type textEncoder func(raw string) string

// contentWalker rebuilds page text from text-showing operators. Word breaks
// come from string boundaries and TJ kerning, line breaks from text
// positioning, so glyph widths are never needed.
type contentWalker struct {
	codec   Codec
	fontFor func(name string) textEncoder

	out   strings.Builder
	font  textEncoder
	lastY float64
	haveY bool
}

func newContentWalker(codec Codec, fontFor func(name string) textEncoder) *contentWalker {
	return &contentWalker{codec: codec, fontFor: fontFor}
}

func (w *contentWalker) newline() {
	if w.out.Len() > 0 && !strings.HasSuffix(w.out.String(), "\n") {
		w.out.WriteByte('\n')
	}
}

func (w *contentWalker) show(o operand) {
	if !o.isString {
		return
	}
	if w.font == nil {
		w.out.WriteString(w.codec.Decode([]byte(o.raw)))
		return
	}
	w.out.WriteString(redecode(w.font(o.raw), w.codec))
}

func (w *contentWalker) apply(op string, args []operand) {
	switch op {
	case "Tf":
		if len(args) == 2 {
			w.font = w.fontFor(args[0].name)
		}
	case "Tj":
		if len(args) == 1 {
			w.show(args[0])
		}
	case "'":
		w.newline()
		if len(args) == 1 {
			w.show(args[0])
		}
	case "\"":
		w.newline()
		if len(args) == 3 {
			w.show(args[2])
		}
	case "TJ":
		if len(args) != 1 {
			return
		}
		for _, x := range args[0].items {
			if x.isString {
				w.show(x)
			} else if x.num < -200 {
				// Large negative kerning separates words.
				w.out.WriteByte(' ')
			}
		}
	case "T*":
		w.newline()
	case "Td", "TD":
		if len(args) == 2 && args[1].num != 0 {
			w.newline()
		}
	case "Tm":
		if len(args) == 6 {
			y := args[5].num
			if w.haveY && y != w.lastY {
				w.newline()
			}
			w.lastY, w.haveY = y, true
		}
	}
}

func (w *contentWalker) text() string {
	return w.out.String()
}

// hasUnicodeMapping reports whether a font's codes can be mapped to Unicode
// by the parser: through a ToUnicode CMap, a named Western encoding or a
// Differences dictionary. Other fonts are left to the codec.
func hasUnicodeMapping(toUnicode bool, encodingName string, encodingIsDict bool) bool {
	if toUnicode || encodingIsDict {
		return true
	}
	switch encodingName {
	case "WinAnsiEncoding", "MacRomanEncoding":
		return true
	}
	return false
}
