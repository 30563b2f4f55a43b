// Package convert re-encodes uploaded images to a requested output format.
// Non-image files pass through untouched regardless of the requested format.
package convert

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"zipdrop/internal/model"
)

// FormatNone disables conversion.
const FormatNone = "none"

var ErrUnsupportedFormat = errors.New("unsupported target format")

// imageExtensions are the upload extensions treated as images.
var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
}

// IsImage reports whether the filename's extension marks it as an image.
func IsImage(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// Convert re-encodes an image file to the target format and renames its
// extension to match. The zero value of format and FormatNone are no-ops, as
// are non-image inputs, which are returned byte-identical.
func Convert(file model.UploadFile, format string) (model.UploadFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" || format == FormatNone || !IsImage(file.Name) {
		return file, nil
	}

	img, _, err := image.Decode(bytes.NewReader(file.Data))
	if err != nil {
		return file, fmt.Errorf("decode %s: %w", file.Name, err)
	}

	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "jpg", "jpeg":
		err = jpeg.Encode(&buf, img, nil)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		return file, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return file, fmt.Errorf("encode %s as %s: %w", file.Name, format, err)
	}

	base := strings.TrimSuffix(file.Name, filepath.Ext(file.Name))
	return model.UploadFile{
		Name: base + "." + format,
		Data: buf.Bytes(),
	}, nil
}
