package validation

import (
	"mime/multipart"
	"strings"
)

// MaxUploadBytes is the upper bound on a single uploaded blob.
const MaxUploadBytes = 10 << 20 // 10 MiB

// ValidateUpload checks an incoming multipart file before anything is
// written to storage. Any content type is accepted; only size and a usable
// filename are enforced.
func ValidateUpload(header *multipart.FileHeader) error {
	if header == nil {
		return errorf("no file uploaded")
	}

	if strings.TrimSpace(header.Filename) == "" {
		return errorf("uploaded file has no name")
	}

	if header.Size > MaxUploadBytes {
		return errorf("file too large: maximum size is %d MB", MaxUploadBytes/(1<<20))
	}

	return nil
}
