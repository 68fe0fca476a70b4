package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
)

// JPEGQuality is used when a composite is saved with a .jpg or .jpeg name.
const JPEGQuality = 95

// encoderFor picks the bild encoder matching the file extension.
func encoderFor(path string) (imgio.Encoder, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return imgio.PNGEncoder(), true
	case ".jpg", ".jpeg":
		return imgio.JPEGEncoder(JPEGQuality), true
	case ".bmp":
		return imgio.BMPEncoder(), true
	}
	return nil, false
}

// CanSave reports whether Save can write a file with this name.
func CanSave(path string) bool {
	_, ok := encoderFor(path)
	return ok
}

// Save writes img to path, choosing PNG, JPEG or BMP from the extension.
func Save(path string, img image.Image) error {
	enc, ok := encoderFor(path)
	if !ok {
		return fmt.Errorf("unsupported output format %q", filepath.Ext(path))
	}
	if err := imgio.Save(path, img, enc); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// EncodedImage is an image returned inline as base64 PNG data.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG renders img as base64-encoded PNG.
func EncodePNG(img image.Image) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return &EncodedImage{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
