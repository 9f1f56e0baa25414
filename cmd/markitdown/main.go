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

// Package main is the markitdown command line tool.
package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	markitdown "github.com/conductor-oss/markitdown-pdf"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "markitdown [flags] [source]",
	Short: "Convert PDF documents to Markdown",
	Long: `markitdown converts PDF documents to plain-text Markdown.

The source is a file path or an http(s) URL. Without a source the document
is read from stdin; pass --extension or --mime-type so it can be recognized.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       version,
	RunE:          run,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.Flags()
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.StringP("extension", "x", "", "file extension hint (for stdin input)")
	flags.StringP("mime-type", "m", "", "MIME type hint")
	flags.StringP("charset", "c", "", "charset hint")
	flags.String("pdf-backend", markitdown.DefaultPDFBackend,
		"PDF text extraction backend: "+strings.Join(markitdown.PDFBackends(), ", "))
	flags.Bool("verbose", false, "log conversion details to stderr")
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./markitdown.yaml or ~/.config/markitdown/config.yaml)")

	_ = viper.BindPFlag("pdf.backend", flags.Lookup("pdf-backend"))
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
}

func run(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.DiscardHandler)
	if viper.GetBool("verbose") {
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	if configFileUsed != "" {
		logger.Debug("using config file", "path", configFileUsed)
	}

	m := markitdown.New(
		markitdown.WithPDFBackend(viper.GetString("pdf.backend")),
		markitdown.WithLogger(logger),
	)

	var (
		result *markitdown.DocumentConverterResult
		err    error
	)
	if len(args) == 0 {
		result, err = convertStdin(cmd, m)
	} else {
		result, err = m.Convert(args[0])
	}
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	return writeResult(cmd.OutOrStdout(), output, result.Markdown)
}

func convertStdin(cmd *cobra.Command, m *markitdown.MarkItDown) (*markitdown.DocumentConverterResult, error) {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}

	extension, _ := cmd.Flags().GetString("extension")
	mimeType, _ := cmd.Flags().GetString("mime-type")
	charset, _ := cmd.Flags().GetString("charset")

	info := markitdown.StreamInfo{
		Extension: normalizeExtension(extension),
		MIMEType:  mimeType,
		Charset:   charset,
	}
	if info.MIMEType == "" && info.Extension != "" {
		info.MIMEType = markitdown.MIMEFromExtension(info.Extension)
	}
	return m.ConvertReader(bytes.NewReader(data), info)
}

// normalizeExtension lowercases ext and adds the leading dot.
func normalizeExtension(ext string) string {
	if ext == "" {
		return ""
	}
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func writeResult(stdout io.Writer, output, markdown string) error {
	if output == "" {
		_, err := fmt.Fprintln(stdout, markdown)
		return err
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(output, []byte(markdown+"\n"), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
