// Package csvio reads and writes the flat working files the tool
// produces: plain CSV with an optional `# Key: value` metadata header
// describing how the data was acquired.
package csvio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Document is one working file: its column layout, data rows, and the
// metadata carried in the comment header.
type Document struct {
	Metadata map[string]string
	Columns  []string
	Rows     [][]string
}

const commentChar = "#"

// metadataOrder fixes the header layout for the well-known keys; any
// others follow alphabetically.
var metadataOrder = []string{
	"state", "county", "city", "country", "bands",
	"session", "provenance", "records", "generated",
}

// Write persists a document, creating parent directories as needed.
func Write(path string, doc *Document) error {
	if len(doc.Rows) == 0 {
		return fmt.Errorf("refusing to write empty document to %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	var buf bytes.Buffer
	for _, key := range metadataKeys(doc.Metadata) {
		fmt.Fprintf(&buf, "%s %s: %s\n", commentChar, titleCase(key), doc.Metadata[key])
	}
	if len(doc.Metadata) > 0 {
		fmt.Fprintln(&buf, commentChar)
	}

	w := csv.NewWriter(&buf)
	if err := w.Write(doc.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := w.WriteAll(doc.Rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Read loads a document, splitting the comment header from the tabular
// body. Comment lines that are not key: value pairs are ignored, and
// comments after the header are skipped without contributing metadata.
func Read(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc := &Document{Metadata: make(map[string]string)}
	var body bytes.Buffer

	inHeader := true
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		// Comment lines never reach the CSV parser; only the leading
		// header block contributes metadata.
		if strings.HasPrefix(trimmed, commentChar) {
			if inHeader {
				if key, value, ok := parseComment(trimmed); ok {
					doc.Metadata[key] = value
				}
			}
			continue
		}
		if trimmed != "" {
			inHeader = false
		}
		if !inHeader {
			body.WriteString(line)
			body.WriteByte('\n')
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	r := csv.NewReader(&body)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s contains no tabular data", path)
	}

	doc.Columns = rows[0]
	doc.Rows = rows[1:]
	return doc, nil
}

func parseComment(line string) (key, value string, ok bool) {
	text := strings.TrimSpace(strings.TrimPrefix(line, commentChar))
	key, value, ok = strings.Cut(text, ":")
	if !ok {
		return "", "", false
	}
	key = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), " ", "_")
	return key, strings.TrimSpace(value), key != ""
}

// metadataKeys orders well-known keys first, the rest alphabetically.
func metadataKeys(meta map[string]string) []string {
	var known, rest []string
	for _, key := range metadataOrder {
		if _, ok := meta[key]; ok {
			known = append(known, key)
		}
	}
	for key := range meta {
		if !contains(metadataOrder, key) {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(known, rest...)
}

// titleCase renders a snake_case metadata key as a readable header
// label, e.g. "detail_state" -> "Detail State".
func titleCase(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func contains(keys []string, want string) bool {
	for _, k := range keys {
		if k == want {
			return true
		}
	}
	return false
}
