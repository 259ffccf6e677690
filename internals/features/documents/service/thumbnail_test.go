package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 0, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func TestThumbnailFromImage(t *testing.T) {
	data := pngBytes(t, 512, 384)
	thumb := Thumbnail(data, "image/png")
	if len(thumb) == 0 {
		t.Fatal("no thumbnail produced for a valid png")
	}
	// RIFF....WEBP container magic
	if !bytes.HasPrefix(thumb, []byte("RIFF")) || !bytes.Equal(thumb[8:12], []byte("WEBP")) {
		t.Fatalf("thumbnail is not webp: % x", thumb[:12])
	}
}

func TestThumbnailSkipsNonImages(t *testing.T) {
	if got := Thumbnail([]byte("%PDF-1.7"), "application/pdf"); got != nil {
		t.Fatal("pdf should not produce a thumbnail")
	}
	if got := Thumbnail([]byte("not an image"), "image/png"); got != nil {
		t.Fatal("undecodable bytes should not produce a thumbnail")
	}
}
