//go:build !ocr

// Package ocr recognizes text in images. This build has no OCR engine; build
// with -tags ocr (and Tesseract installed) to enable it.
package ocr

import "errors"

// ErrOCRNotEnabled is returned when the binary was built without the ocr tag.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

type Client struct{}

func New(lang string) (*Client, error) {
	return nil, ErrOCRNotEnabled
}

func (c *Client) Close() error {
	return nil
}

func (c *Client) Recognize(image []byte) (string, error) {
	return "", ErrOCRNotEnabled
}
