package markitdown

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const (
	// helveticaFont has no Encoding and no ToUnicode, so string bytes are
	// left to the codec.
	helveticaFont = "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>"
	winAnsiFont   = "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>"
)

// buildPDF assembles a minimal PDF with one page per content stream, all
// pages sharing font as /F1.
func buildPDF(font string, contents ...string) []byte {
	objs := []string{"<< /Type /Catalog /Pages 2 0 R >>"}

	kids := make([]string, len(contents))
	for i := range contents {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objs = append(objs,
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(contents)),
		font,
	)
	for i, c := range contents {
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(c), c),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

// showText is a content stream drawing raw as a hex string, one line per
// argument.
func showText(lines ...[]byte) string {
	var b strings.Builder
	b.WriteString("BT /F1 12 Tf 72 720 Td")
	for i, raw := range lines {
		if i > 0 {
			b.WriteString(" 0 -14 Td")
		}
		fmt.Fprintf(&b, " <%X> Tj", raw)
	}
	b.WriteString(" ET")
	return b.String()
}

// trackingReader counts rewinds to the start of the underlying reader.
type trackingReader struct {
	*bytes.Reader
	rewinds int
}

func newTrackingReader(data []byte) *trackingReader {
	return &trackingReader{Reader: bytes.NewReader(data)}
}

func (r *trackingReader) Seek(offset int64, whence int) (int64, error) {
	if offset == 0 && whence == io.SeekStart {
		r.rewinds++
	}
	return r.Reader.Seek(offset, whence)
}

// failingSeeker rejects every seek.
type failingSeeker struct {
	io.Reader
}

func (failingSeeker) Seek(int64, int) (int64, error) {
	return 0, fmt.Errorf("seek not supported")
}

type fakeResult struct {
	text  string
	err   error
	panic bool
}

// fakeExtractor returns canned results per codec name. Calls beyond the
// candidate list are the final default extraction and get fallback.
type fakeExtractor struct {
	results  map[string]fakeResult
	fallback fakeResult

	calls     []string
	positions []int64
}

func (f *fakeExtractor) ExtractText(r io.ReadSeeker, codec Codec) (string, error) {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return "", err
	}
	f.positions = append(f.positions, pos)
	f.calls = append(f.calls, codec.Name)

	// Consume the stream the way a parser would.
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}

	res := f.fallback
	if len(f.calls) <= len(codecCandidates()) {
		res = f.results[codec.Name]
	}
	if res.panic {
		panic("malformed PDF")
	}
	return res.text, res.err
}

func newTestPdfConverter(e TextExtractor) *PdfConverter {
	return &PdfConverter{
		extractor: e,
		feature:   "pdf",
		logger:    slog.New(slog.DiscardHandler),
	}
}
