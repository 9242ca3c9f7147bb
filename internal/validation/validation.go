// Package validation checks user-supplied file paths and input sizes before
// the CLI reads catalogs or collection records.
package validation

import (
	stderrors "errors"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/FocuswithJustin/passage/core/errors"
)

// Input limits.
const (
	// MaxInputSize is the largest catalog or record file read (64 MB).
	MaxInputSize = 64 << 20
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
)

// Common validation errors. Returned errors are *errors.ValidationError
// values wrapping one of these.
var (
	ErrEmptyPath        = stderrors.New("path cannot be empty")
	ErrPathTooLong      = stderrors.New("path too long")
	ErrInvalidCharacter = stderrors.New("invalid character in path")
	ErrFileTooLarge     = stderrors.New("file too large")
	ErrNotRegularFile   = stderrors.New("not a regular file")
)

func invalid(path string, err error, message string) error {
	return &errors.ValidationError{Field: "path", Value: path, Message: message, Err: err}
}

// ValidatePath checks for empty paths, length limits and control characters.
func ValidatePath(path string) error {
	if path == "" {
		return invalid(path, ErrEmptyPath, ErrEmptyPath.Error())
	}
	if len(path) > MaxPathLength {
		return invalid(path[:32]+"...", ErrPathTooLong, ErrPathTooLong.Error())
	}
	if strings.Contains(path, "\x00") {
		return invalid(path, ErrInvalidCharacter, "null byte not allowed")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return invalid(path, ErrInvalidCharacter, "control character not allowed")
		}
	}
	return nil
}

// ReadFile validates path and reads at most limit bytes from it. A file
// larger than limit is rejected without being read in full.
func ReadFile(path string, limit int64) ([]byte, error) {
	if err := ValidatePath(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.NewIO("stat", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, invalid(path, ErrNotRegularFile, ErrNotRegularFile.Error())
	}
	if info.Size() > limit {
		return nil, invalid(path, ErrFileTooLarge, "file exceeds the input size limit")
	}

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	if int64(len(data)) > limit {
		return nil, invalid(path, ErrFileTooLarge, "file exceeds the input size limit")
	}
	return data, nil
}
