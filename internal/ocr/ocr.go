//go:build ocr

// Package ocr recognizes text in images with Tesseract via gosseract.
// Tesseract and its language data must be installed on the host.
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client wraps a Tesseract handle. It is not safe for concurrent use.
type Client struct {
	client *gosseract.Client
}

// New creates a client for the given "+" separated languages, e.g. "eng+fra".
// An empty language keeps Tesseract's default.
func New(lang string) (*Client, error) {
	c := &Client{client: gosseract.NewClient()}
	if lang != "" {
		if err := c.client.SetLanguage(strings.Split(lang, "+")...); err != nil {
			c.client.Close()
			return nil, fmt.Errorf("set language %q: %w", lang, err)
		}
	}
	return c, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Recognize returns the trimmed text found in an encoded image (PNG, JPEG, TIFF).
func (c *Client) Recognize(image []byte) (string, error) {
	if err := c.client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	return strings.TrimSpace(text), nil
}
