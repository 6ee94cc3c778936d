package i18n

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	oerrors "github.com/extforge/cli/internal/errors"
)

// Message is one localized string key with its default-locale text.
type Message struct {
	Name        string `json:"name" yaml:"name"`
	Message     string `json:"message" yaml:"message"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// BundlePath returns the path of the messages file for locale.
func BundlePath(publicDir, locale string) string {
	return filepath.Join(publicDir, "_locales", locale, "messages.json")
}

// ReadBundle reads, validates, and parses the bundle at path.
func ReadBundle(path string) ([]Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading locale bundle: %w", err)
	}

	if err := Validate(data); err != nil {
		return nil, oerrors.NewParseError("invalid locale bundle", path, err)
	}

	messages, err := Parse(data)
	if err != nil {
		return nil, oerrors.NewParseError("malformed locale bundle", path, err)
	}
	return messages, nil
}

// Parse decodes a bundle into messages, preserving key order. An empty
// object yields an empty list. Duplicate keys are passed through unchanged.
func Parse(data []byte) ([]Message, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	messages := []Message{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading message name: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected message name, got %v", tok)
		}

		var details struct {
			Message     string `json:"message"`
			Description string `json:"description"`
		}
		if err := dec.Decode(&details); err != nil {
			return nil, fmt.Errorf("decoding message %q: %w", name, err)
		}

		messages = append(messages, Message{
			Name:        name,
			Message:     details.Message,
			Description: details.Description,
		})
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after bundle object")
	}

	return messages, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("reading bundle: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
