package fetch

import (
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
)

// Decoder turns a response body into a value.
type Decoder[T any] func(r io.Reader) (T, error)

// JSON decodes the body as JSON into a T.
func JSON[T any]() Decoder[T] {
	return func(r io.Reader) (T, error) {
		var v T
		if err := json.NewDecoder(r).Decode(&v); err != nil {
			return v, fmt.Errorf("decode json: %w", err)
		}
		return v, nil
	}
}

// XML decodes the body as XML into a T.
func XML[T any]() Decoder[T] {
	return func(r io.Reader) (T, error) {
		var v T
		if err := xml.NewDecoder(r).Decode(&v); err != nil {
			return v, fmt.Errorf("decode xml: %w", err)
		}
		return v, nil
	}
}

// Bytes returns the raw body.
func Bytes(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return b, nil
}

// Text returns the body as a string. HTML bodies are text too.
func Text(r io.Reader) (string, error) {
	b, err := Bytes(r)
	return string(b), err
}

// CSV parses a comma-separated body, header row included.
func CSV(r io.Reader) ([][]string, error) {
	return delimited(r, ',')
}

// TSV parses a tab-separated body, header row included.
func TSV(r io.Reader) ([][]string, error) {
	return delimited(r, '\t')
}

func delimited(r io.Reader, comma rune) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decode delimited: %w", err)
	}
	return rows, nil
}
