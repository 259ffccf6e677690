package service

import (
	"bytes"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const thumbMaxPx = 256

// Thumbnail renders a small webp preview for image uploads. Returns nil
// for anything that is not a decodable image; callers treat a missing
// thumbnail as non-fatal.
func Thumbnail(data []byte, contentType string) []byte {
	if !strings.HasPrefix(contentType, "image/") {
		return nil
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil
	}
	thumb := imaging.Fit(img, thumbMaxPx, thumbMaxPx, imaging.Lanczos)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, thumb, &webp.Options{Lossless: false, Quality: 80}); err != nil {
		return nil
	}
	return buf.Bytes()
}
