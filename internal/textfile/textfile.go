// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textfile reads and writes text files in a configurable encoding.
// A File caches its content after the first read until it is written.
package textfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

var (
	// ErrDecode is returned when a file cannot be decoded in its encoding.
	ErrDecode = errors.New("invalid text for encoding")
	// ErrUnknownEncoding is returned for unsupported encoding names.
	ErrUnknownEncoding = errors.New("unknown text encoding")
)

// File is a text file with a content cache. It assumes no one else writes
// the file while it is in use.
type File struct {
	path         string
	encodingName string
	ignoreErrors bool
	cached       *string
}

// New returns a File for path. An empty encoding means UTF-8. With
// ignoreDecodeErrors set, undecodable input is dropped instead of failing
// the read.
func New(path, encodingName string, ignoreDecodeErrors bool) *File {
	return &File{path: path, encodingName: encodingName, ignoreErrors: ignoreDecodeErrors}
}

// Path returns the file path.
func (f *File) Path() string { return f.path }

// Content returns the file content, reading it on first use.
func (f *File) Content() (string, error) {
	if f.cached != nil {
		return *f.cached, nil
	}
	s, err := f.Read()
	if err != nil {
		return "", err
	}
	f.cached = &s
	return s, nil
}

// Read reads and decodes the file, bypassing the cache. CRLF line endings
// are normalized to LF.
func (f *File) Read() (string, error) {
	enc, err := Lookup(f.encodingName)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", f.path, err)
	}

	s, err := decode(enc, data, f.ignoreErrors)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", f.path, err)
	}
	return strings.ReplaceAll(s, "\r\n", "\n"), nil
}

// Write encodes content and overwrites the file, creating parent
// directories as needed. The content cache is invalidated.
func (f *File) Write(content string) error {
	f.cached = nil

	enc, err := Lookup(f.encodingName)
	if err != nil {
		return err
	}
	data, err := enc.NewEncoder().Bytes([]byte(content))
	if err != nil {
		return fmt.Errorf("encoding %s: %w", f.path, err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", f.path, err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", f.path, err)
	}
	return nil
}

// Lookup resolves an IANA encoding name. The empty name resolves to UTF-8.
func Lookup(name string) (encoding.Encoding, error) {
	if name == "" {
		return unicode.UTF8, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return enc, nil
}

// decode converts data to UTF-8. Decoders substitute U+FFFD for invalid
// input; in strict mode that is an error, otherwise the substitutes are
// dropped.
func decode(enc encoding.Encoding, data []byte, ignoreErrors bool) (string, error) {
	if isUTF8(enc) {
		if utf8.Valid(data) {
			return string(data), nil
		}
		if !ignoreErrors {
			return "", ErrDecode
		}
		return strings.ToValidUTF8(string(data), ""), nil
	}

	out, err := enc.NewDecoder().Bytes(data)
	if err != nil && !ignoreErrors {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	s := string(out)
	if strings.ContainsRune(s, utf8.RuneError) {
		if !ignoreErrors {
			return "", ErrDecode
		}
		s = strings.ReplaceAll(s, string(utf8.RuneError), "")
	}
	return s, nil
}

func isUTF8(enc encoding.Encoding) bool {
	if enc == unicode.UTF8 {
		return true
	}
	name, err := ianaindex.IANA.Name(enc)
	return err == nil && name == "UTF-8"
}
