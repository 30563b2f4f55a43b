package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"zipdrop/internal/archive"
	"zipdrop/internal/convert"
	"zipdrop/internal/model"
)

var (
	ErrNoFiles          = errors.New("no files provided")
	ErrNothingProcessed = errors.New("no files could be processed")
)

// BatchTooLargeError is returned when the batch exceeds the caller's size ceiling.
type BatchTooLargeError struct {
	TotalBytes int64
	LimitBytes int64
}

func (e *BatchTooLargeError) Error() string {
	return fmt.Sprintf("total upload size %.2f MB exceeds the %.0f MB limit",
		float64(e.TotalBytes)/(1024*1024), float64(e.LimitBytes)/(1024*1024))
}

// allowedExtensions is the upload allow-list.
var allowedExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true,
	".gif": true, ".pdf": true, ".zip": true,
}

// Allowed reports whether the filename carries an allow-listed extension.
func Allowed(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext != "" && allowedExtensions[ext]
}

// CompressResult is the outcome of processing one upload batch.
// Skipped carries one user-visible message per file that was left out of the
// archive (disallowed extension) or archived without the requested conversion.
type CompressResult struct {
	Zip      []byte
	Archived int
	Skipped  []string
}

// CompressService defines the use case of turning an upload batch into a ZIP.
type CompressService interface {
	// Process validates the batch against the size ceiling and the extension
	// allow-list, optionally converts images to the requested format, and
	// bundles the surviving files into an in-memory deflate ZIP.
	Process(ctx context.Context, files []model.UploadFile, format string, maxBatchBytes int64) (*CompressResult, error)
}

type compressService struct{}

// NewCompressService constructs a CompressService.
func NewCompressService() CompressService {
	return &compressService{}
}

// Process applies a skip-and-continue policy for per-file problems: a
// disallowed extension drops that file, a failed conversion archives the
// original instead; either way the rest of the batch proceeds and the skip is
// reported back. Batch-level problems (empty batch, size over ceiling, every
// file skipped) fail the whole request.
func (s *compressService) Process(ctx context.Context, files []model.UploadFile, format string, maxBatchBytes int64) (*CompressResult, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	total := model.BatchSize(files)
	if total > maxBatchBytes {
		return nil, &BatchTooLargeError{TotalBytes: total, LimitBytes: maxBatchBytes}
	}

	res := &CompressResult{}
	var accepted []model.UploadFile
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !Allowed(f.Name) {
			res.Skipped = append(res.Skipped, fmt.Sprintf("file type not allowed: %s", f.Name))
			continue
		}

		converted, err := convert.Convert(f, format)
		if err != nil {
			// Best-effort conversion: keep the original file in the archive.
			res.Skipped = append(res.Skipped, fmt.Sprintf("could not convert: %s", f.Name))
			converted = f
		}
		accepted = append(accepted, converted)
	}

	if len(accepted) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNothingProcessed, strings.Join(res.Skipped, "; "))
	}

	data, err := archive.Build(accepted)
	if err != nil {
		return nil, fmt.Errorf("build archive: %w", err)
	}

	res.Zip = data
	res.Archived = len(accepted)
	return res, nil
}
