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

import "io"

// StreamInfo describes the declared type of an input stream. Converters
// only read it.
type StreamInfo struct {
	MIMEType  string
	Extension string
	Charset   string
	Filename  string
	LocalPath string
	URL       string
}

// DocumentConverterResult holds the Markdown produced by a converter.
type DocumentConverterResult struct {
	Markdown string
	Title    string
}

// DocumentConverter is implemented by every format plugin.
type DocumentConverter interface {
	// Accepts reports whether this converter applies to the declared stream
	// type. It must not read from or seek the stream.
	Accepts(info StreamInfo) bool

	// Convert turns the stream into Markdown. The reader may be positioned
	// anywhere; converters seek as they need.
	Convert(reader io.ReadSeeker, info StreamInfo) (*DocumentConverterResult, error)
}
