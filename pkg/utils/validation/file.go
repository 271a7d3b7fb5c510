package validation

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
)

var (
	ErrFileSize     = errors.New("file size exceeds limit of 25MB")
	ErrFileType     = errors.New("invalid file type")
	ErrFileRequired = errors.New("no file provided")
)

const MaxUploadSize = 25 * 1024 * 1024 // 25MB

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
	".mp4":  true,
	".mov":  true,
	".mp3":  true,
	".wav":  true,
	".pdf":  true,
}

// ValidateUpload checks presence, size and extension of an asset upload.
func ValidateUpload(file *multipart.FileHeader) error {
	if file == nil {
		return ErrFileRequired
	}

	if file.Size > MaxUploadSize {
		return ErrFileSize
	}

	ext := filepath.Ext(strings.ToLower(file.Filename))
	if !allowedExtensions[ext] {
		return ErrFileType
	}

	return nil
}

// IsImage reports whether the upload looks like an image by extension.
func IsImage(file *multipart.FileHeader) bool {
	switch filepath.Ext(strings.ToLower(file.Filename)) {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	}
	return false
}
