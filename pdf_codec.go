package markitdown

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Codec is a hypothesis about how the bytes of PDF text strings are encoded.
// It only matters for bytes the parsing backend could not map to Unicode
// through the font's own tables.
type Codec struct {
	Name       string
	newDecoder func() transform.Transformer
}

// Decode interprets raw as text in this codec. Bytes the codec cannot
// represent come out as U+FFFD.
func (c Codec) Decode(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	out, _, err := transform.Bytes(c.newDecoder(), raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), string(utf8.RuneError))
	}
	return string(out)
}

func (c Codec) String() string {
	return c.Name
}

var (
	// CodecUTF8 replaces invalid sequences with U+FFFD.
	CodecUTF8 = Codec{Name: "utf-8", newDecoder: func() transform.Transformer {
		return unicode.UTF8.NewDecoder()
	}}

	// CodecLatin1 is ISO-8859-1 restricted to its printable repertoire: the
	// C1 control range 0x80-0x9F decodes to U+FFFD.
	CodecLatin1 = Codec{Name: "latin-1", newDecoder: func() transform.Transformer {
		return transform.Chain(charmap.ISO8859_1.NewDecoder(), runes.Map(replaceC1))
	}}

	// CodecWindows1252 is the Windows Western European code page.
	CodecWindows1252 = Codec{Name: "cp1252", newDecoder: func() transform.Transformer {
		return charmap.Windows1252.NewDecoder()
	}}

	// CodecISO88591 maps every byte to U+0000-U+00FF.
	CodecISO88591 = Codec{Name: "iso-8859-1", newDecoder: func() transform.Transformer {
		return charmap.ISO8859_1.NewDecoder()
	}}

	// DefaultCodec is used for the last, unfiltered extraction.
	DefaultCodec = CodecUTF8
)

// codecCandidates returns the codecs to try, most likely first.
func codecCandidates() []Codec {
	return []Codec{CodecUTF8, CodecLatin1, CodecWindows1252, CodecISO88591}
}

func isC1(r rune) bool {
	return r >= 0x80 && r <= 0x9f
}

func replaceC1(r rune) rune {
	if isC1(r) {
		return utf8.RuneError
	}
	return r
}

// mojibakeReplacement is U+FFFD encoded as UTF-8 and read back as Latin-1.
const mojibakeReplacement = "ï¿½"

// containsReplacement reports whether s shows signs of a wrong decoding.
func containsReplacement(s string) bool {
	return strings.ContainsRune(s, utf8.RuneError) || strings.Contains(s, mojibakeReplacement)
}

// redecode applies codec to the parts of already-decoded text that still
// carry raw bytes: invalid UTF-8 sequences and C1 control runes, which
// parsers emit when a font maps a code to itself.
func redecode(s string, codec Codec) string {
	if utf8.ValidString(s) && strings.IndexFunc(s, isC1) < 0 {
		return s
	}

	var b strings.Builder
	var pending []byte
	flush := func() {
		if len(pending) > 0 {
			b.WriteString(codec.Decode(pending))
			pending = pending[:0]
		}
	}
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			pending = append(pending, s[i])
		case isC1(r):
			pending = append(pending, byte(r))
		default:
			flush()
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	flush()
	return b.String()
}
