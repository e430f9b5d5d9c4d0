package prompt

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// MaxImageBytes bounds attached images.
const MaxImageBytes = 10 << 20

// DefaultImageType is assumed for bare base64 payloads.
const DefaultImageType = "image/png"

var (
	// ErrNotImage is returned when content does not sniff as an image.
	ErrNotImage = errors.New("not an image")
	// ErrImageTooLarge is returned for images above MaxImageBytes.
	ErrImageTooLarge = errors.New("image too large")
)

// Image is an inline image attached to a doubt.
type Image struct {
	MIMEType string
	Data     []byte
}

// ParseDataURL decodes a browser-style "data:<mime>;base64,<payload>"
// string. A bare base64 payload without the data: prefix is accepted and
// assumed to be PNG.
func ParseDataURL(s string) (*Image, error) {
	s = strings.TrimSpace(s)
	mime := DefaultImageType
	payload := s

	if rest, ok := strings.CutPrefix(s, "data:"); ok {
		meta, data, found := strings.Cut(rest, ",")
		if !found {
			return nil, fmt.Errorf("data URL: missing payload separator")
		}
		mt, enc, _ := strings.Cut(meta, ";")
		if enc != "base64" {
			return nil, fmt.Errorf("data URL: unsupported encoding %q", enc)
		}
		if mt != "" {
			mime = mt
		}
		payload = data
	}

	if !strings.HasPrefix(mime, "image/") {
		return nil, fmt.Errorf("data URL: %w (%s)", ErrNotImage, mime)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("data URL: decode base64: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("data URL: empty payload")
	}
	if len(data) > MaxImageBytes {
		return nil, ErrImageTooLarge
	}
	return &Image{MIMEType: mime, Data: data}, nil
}

// LoadImage reads an image file and sniffs its MIME type from content.
func LoadImage(path string) (*Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat image: %w", err)
	}
	if info.Size() > MaxImageBytes {
		return nil, fmt.Errorf("%s: %w", path, ErrImageTooLarge)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return nil, fmt.Errorf("%s: %w (%s)", path, ErrNotImage, mime)
	}
	return &Image{MIMEType: mime, Data: data}, nil
}
