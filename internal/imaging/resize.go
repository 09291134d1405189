// Package imaging normalizes photos attached to package records. Uploads
// arrive as base64 data URIs; they are downscaled to a bounded width and
// re-encoded as JPEG so a single record stays cheap to store and ship.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"

	"golang.org/x/image/draw"
)

const (
	// MaxWidth bounds the stored photo; taller-than-wide photos scale by
	// the same factor.
	MaxWidth = 800

	// JPEGQuality matches a 0.7 canvas export.
	JPEGQuality = 70

	dataURIPrefix = "data:image/jpeg;base64,"
)

var ErrNotDataURI = errors.New("image is not a base64 data URI")

// NormalizeDataURI decodes a data URI, scales the image down to MaxWidth if
// needed and re-encodes it as a JPEG data URI. Images already narrow enough
// are re-encoded without scaling. An empty input passes through untouched.
func NormalizeDataURI(uri string) (string, error) {
	if uri == "" {
		return "", nil
	}
	raw, err := decodeDataURI(uri)
	if err != nil {
		return "", err
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	out := src
	bounds := src.Bounds()
	if bounds.Dx() > MaxWidth {
		scale := float64(MaxWidth) / float64(bounds.Dx())
		dst := image.NewRGBA(image.Rect(0, 0, MaxWidth, int(float64(bounds.Dy())*scale)))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func decodeDataURI(uri string) ([]byte, error) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, ErrNotDataURI
	}
	_, encoded, ok := strings.Cut(uri, ";base64,")
	if !ok {
		return nil, ErrNotDataURI
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	return raw, nil
}
