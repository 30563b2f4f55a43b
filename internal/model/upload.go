package model

// UploadFile is one uploaded file held in memory for the duration of a request.
// This is a pure domain model with no framework-specific dependencies; it can be
// used across layers (HTTP, service, archive) without coupling to multipart parsing.
type UploadFile struct {
	Name string
	Data []byte
}

// Size returns the byte length of the file content.
func (f UploadFile) Size() int64 {
	return int64(len(f.Data))
}

// BatchSize sums the sizes of all files in a batch.
func BatchSize(files []UploadFile) int64 {
	var total int64
	for _, f := range files {
		total += f.Size()
	}
	return total
}
