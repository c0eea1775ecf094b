package store

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/tidwall/pretty"
)

// Format identifies an on-disk encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// FormatFromPath infers the format from a file extension (case-insensitive).
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, path)
	}
}

// codec reads and writes a whole store file.
// decode returns the columns found in the file, in order, and one record per row
// keyed by those columns. Records are not aligned to any schema.
type codec interface {
	decode(r io.Reader) ([]string, []Record, error)
	encode(w io.Writer, schema Schema, records []Record) error
}

func codecFor(f Format) codec {
	if f == FormatJSON {
		return jsonCodec{}
	}
	return csvCodec{}
}

// csvCodec stores the schema as the header row and one record per line.
type csvCodec struct{}

func (csvCodec) decode(r io.Reader) ([]string, []Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // tolerate short or long rows from external edits

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading CSV header: %w", err)
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading CSV row %d: %w", line, err)
		}

		rec := make(Record, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		records = append(records, rec)
	}

	return header, records, nil
}

func (csvCodec) encode(w io.Writer, schema Schema, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(schema); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for i, rec := range records {
		if err := cw.Write(rec.Values(schema)); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// jsonCodec stores an array of objects. Key order is preserved on read so
// that columns can be discovered in the order they were written.
type jsonCodec struct{}

func (jsonCodec) decode(r io.Reader) ([]string, []Record, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, nil, nil // empty file reads as an empty array
	}
	if err != nil {
		return nil, nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, nil, fmt.Errorf("parsing JSON: expected array of records")
	}

	var columns []string
	seen := make(map[string]bool)
	var records []Record

	for n := 1; dec.More(); n++ {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("parsing record %d: %w", n, err)
		}
		if d, ok := tok.(json.Delim); !ok || d != '{' {
			return nil, nil, fmt.Errorf("parsing record %d: expected object", n)
		}

		rec := make(Record)
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, nil, fmt.Errorf("parsing record %d: %w", n, err)
			}
			key, _ := keyTok.(string)

			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return nil, nil, fmt.Errorf("parsing record %d field %q: %w", n, key, err)
			}
			val, err := jsonValueString(raw)
			if err != nil {
				return nil, nil, fmt.Errorf("parsing record %d field %q: %w", n, key, err)
			}

			rec[key] = val
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
		if _, err := dec.Token(); err != nil {
			return nil, nil, fmt.Errorf("parsing record %d: %w", n, err)
		}
		records = append(records, rec)
	}

	if _, err := dec.Token(); err != nil {
		return nil, nil, fmt.Errorf("parsing JSON: %w", err)
	}

	return columns, records, nil
}

// jsonValueString coerces a JSON value to the string a CSV cell would hold.
// Strings are unquoted, null is empty, numbers and booleans keep their literal
// text, and nested values keep their compact JSON.
func jsonValueString(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0, bytes.Equal(raw, []byte("null")):
		return "", nil
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	case raw[0] == '{' || raw[0] == '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return "", err
		}
		return buf.String(), nil
	default:
		return string(raw), nil
	}
}

func (jsonCodec) encode(w io.Writer, schema Schema, records []Record) error {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, rec := range records {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, col := range schema {
			if j > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(col)
			if err != nil {
				return fmt.Errorf("encoding column %q: %w", col, err)
			}
			val, err := json.Marshal(rec[col])
			if err != nil {
				return fmt.Errorf("encoding record %d: %w", i+1, err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')

	_, err := w.Write(pretty.Pretty(buf.Bytes()))
	return err
}
