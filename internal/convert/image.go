package convert

import (
	"fmt"
	"io"

	"github.com/dgallion1/mdsumm/internal/ocr"
)

// ImageConverter runs OCR over an image and emits the recognized text under
// a heading named after the file.
type ImageConverter struct {
	Language string
}

func (c *ImageConverter) Convert(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	client, err := ocr.New(c.Language)
	if err != nil {
		return "", err
	}
	defer client.Close()

	text, err := client.Recognize(data)
	if err != nil {
		return "", fmt.Errorf("ocr %s: %w", filename, err)
	}
	return WithTitle(baseTitle(filename), text), nil
}
