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

// Package markitdown converts PDF documents to Markdown text for indexing
// and LLM consumption. Other formats can be plugged in with
// RegisterConverter.
package markitdown

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	// PrioritySpecific is for format-specific converters such as PDF.
	PrioritySpecific = 0.0
	// PriorityGeneric is for catch-all converters registered by hosts.
	PriorityGeneric = 10.0
)

type registeredConverter struct {
	converter DocumentConverter
	priority  float64
	name      string
}

// MarkItDown dispatches an input to the first registered converter that
// accepts it.
type MarkItDown struct {
	converters []registeredConverter
	pdfBackend string
	logger     *slog.Logger
}

// New creates a new MarkItDown instance with the given options.
func New(opts ...Option) *MarkItDown {
	m := &MarkItDown{}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.New(slog.DiscardHandler)
	}
	m.enableBuiltins()
	return m
}

// RegisterConverter adds a converter with the given priority.
// Lower priority values are tried first.
func (m *MarkItDown) RegisterConverter(name string, c DocumentConverter, priority float64) {
	m.converters = append(m.converters, registeredConverter{
		converter: c,
		priority:  priority,
		name:      name,
	})
	sort.SliceStable(m.converters, func(i, j int) bool {
		return m.converters[i].priority < m.converters[j].priority
	})
}

// Convert converts a local path or an http(s) URL.
func (m *MarkItDown) Convert(source string) (*DocumentConverterResult, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return m.ConvertURL(source)
	}
	return m.ConvertFile(source)
}

// ConvertFile converts a local file to markdown.
func (m *MarkItDown) ConvertFile(path string) (*DocumentConverterResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	info := StreamInfo{
		Extension: ext,
		Filename:  filepath.Base(path),
		LocalPath: path,
		MIMEType:  detectMIMEType(f, ext),
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek: %w", err)
	}

	return m.ConvertReader(f, info)
}

// ConvertReader converts a stream to markdown using the provided StreamInfo.
func (m *MarkItDown) ConvertReader(r io.ReadSeeker, info StreamInfo) (*DocumentConverterResult, error) {
	return m.convert(r, info)
}

// ConvertURL fetches a URL and converts the response body.
func (m *MarkItDown) ConvertURL(url string) (*DocumentConverterResult, error) {
	resp, err := http.Get(url) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("fetch URL: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	reader := bytes.NewReader(data)

	info := StreamInfo{URL: url}
	info.MIMEType, info.Charset = parseContentType(resp.Header.Get("Content-Type"))

	urlPath := strings.Split(url, "?")[0]
	info.Extension = strings.ToLower(filepath.Ext(urlPath))
	if info.Extension != "" {
		info.Filename = filepath.Base(urlPath)
	}

	if info.MIMEType == "" {
		info.MIMEType = detectMIMEType(reader, info.Extension)
		if _, err := reader.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("seek: %w", err)
		}
	}

	return m.ConvertReader(reader, info)
}

// parseContentType splits a Content-Type header into MIME type and charset.
func parseContentType(ct string) (mime, charset string) {
	if ct == "" {
		return "", ""
	}
	parts := strings.Split(ct, ";")
	mime = strings.TrimSpace(parts[0])
	for _, p := range parts[1:] {
		p = strings.TrimSpace(p)
		if strings.HasPrefix(strings.ToLower(p), "charset=") {
			charset = strings.Trim(p[len("charset="):], `"'`)
		}
	}
	return mime, charset
}

func (m *MarkItDown) convert(r io.ReadSeeker, info StreamInfo) (*DocumentConverterResult, error) {
	var failedAttempts []FailedConversionAttempt

	for _, rc := range m.converters {
		if !rc.converter.Accepts(info) {
			continue
		}

		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("seek: %w", err)
		}

		result, err := rc.converter.Convert(r, info)
		if err != nil {
			m.logger.Debug("converter failed", "converter", rc.name, "error", err)
			failedAttempts = append(failedAttempts, FailedConversionAttempt{
				Converter: rc.name,
				Err:       err,
			})
			continue
		}

		result.Markdown = normalizeOutput(result.Markdown)
		return result, nil
	}

	if len(failedAttempts) > 0 {
		return nil, &ConversionError{Attempts: failedAttempts}
	}

	return nil, &UnsupportedFormatError{
		Extension: info.Extension,
		MIMEType:  info.MIMEType,
	}
}

func (m *MarkItDown) enableBuiltins() {
	m.RegisterConverter("pdf", NewPdfConverter(m), PrioritySpecific)
}

// detectMIMEType sniffs the content first and falls back to the extension.
func detectMIMEType(r io.ReadSeeker, ext string) string {
	mtype, err := mimetype.DetectReader(r)
	if err == nil && mtype.String() != "application/octet-stream" {
		return mtype.String()
	}
	return MIMEFromExtension(ext)
}

var extensionMIMETypes = map[string]string{
	".pdf":      "application/pdf",
	".html":     "text/html",
	".htm":      "text/html",
	".csv":      "text/csv",
	".txt":      "text/plain",
	".text":     "text/plain",
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".json":     "application/json",
	".xml":      "text/xml",
	".zip":      "application/zip",
}

// MIMEFromExtension returns the MIME type for a known extension (with the
// leading dot), or application/octet-stream.
func MIMEFromExtension(ext string) string {
	if m, ok := extensionMIMETypes[strings.ToLower(ext)]; ok {
		return m
	}
	return "application/octet-stream"
}
