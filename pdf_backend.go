// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package markitdown

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// TextExtractor pulls plain text out of a PDF stream, interpreting bytes
// without a known Unicode mapping with the given codec. Implementations read
// from the current position of r.
type TextExtractor interface {
	ExtractText(r io.ReadSeeker, codec Codec) (string, error)
}

// Names of the built-in PDF backends.
const (
	BackendNative = "native"
	BackendRSC    = "rsc"
	BackendPdfium = "pdfium"

	DefaultPDFBackend = BackendNative
)

var errUnknownBackend = errors.New("unknown PDF backend")

// pdfBackend is an extraction capability that is probed once per process.
// The probe result, including its failure, is kept for every later caller.
type pdfBackend struct {
	feature string
	load    func() (TextExtractor, error)

	once      sync.Once
	extractor TextExtractor
	err       error
}

func (b *pdfBackend) get() (TextExtractor, error) {
	b.once.Do(func() {
		b.extractor, b.err = b.load()
	})
	return b.extractor, b.err
}

var pdfBackends = map[string]*pdfBackend{
	BackendNative: {
		feature: "pdf",
		load:    func() (TextExtractor, error) { return nativeExtractor{}, nil },
	},
	BackendRSC: {
		feature: "pdf",
		load:    func() (TextExtractor, error) { return rscExtractor{}, nil },
	},
	BackendPdfium: {
		feature: "pdfium",
		load:    loadPdfium,
	},
}

// PDFBackends lists the names accepted by WithPDFBackend.
func PDFBackends() []string {
	names := make([]string, 0, len(pdfBackends))
	for name := range pdfBackends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// lookupPDFBackend resolves a backend by name and returns its extractor
// together with the optional feature it belongs to.
func lookupPDFBackend(name string) (TextExtractor, string, error) {
	if name == "" {
		name = DefaultPDFBackend
	}
	b, ok := pdfBackends[strings.ToLower(name)]
	if !ok {
		return nil, name, fmt.Errorf("%w %q (available: %s)", errUnknownBackend, name, strings.Join(PDFBackends(), ", "))
	}
	extractor, err := b.get()
	return extractor, b.feature, err
}
