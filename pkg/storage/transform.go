package storage

import (
	"bytes"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// TransformFunc is a server-side image transform applied before storage.
type TransformFunc func(image.Image) image.Image

// FitWidth scales images wider than max down to max, preserving aspect.
func FitWidth(max int) TransformFunc {
	return func(img image.Image) image.Image {
		if img.Bounds().Dx() <= max {
			return img
		}
		return imaging.Resize(img, max, 0, imaging.Lanczos)
	}
}

// CropSquare center-crops to a square and scales it to size×size.
func CropSquare(size int) TransformFunc {
	return func(img image.Image) image.Image {
		return imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)
	}
}

// Process applies the kind's transform to an upload and returns the bytes
// to store. Formats imaging cannot decode (gif animations, webp) pass
// through untouched, as do kinds without a transform.
func (k Kind) Process(r io.Reader, filename string) (io.Reader, error) {
	if k.Transform == nil {
		return r, nil
	}
	ext := strings.ToLower(filepath.Ext(filename))
	var format imaging.Format
	switch ext {
	case ".jpg", ".jpeg":
		format = imaging.JPEG
	case ".png":
		format = imaging.PNG
	default:
		return r, nil
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		// not decodable; store the original bytes
		return bytes.NewReader(raw), nil
	}
	out := &bytes.Buffer{}
	if err := imaging.Encode(out, k.Transform(img), format); err != nil {
		return nil, err
	}
	return out, nil
}
