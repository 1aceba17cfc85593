package fileurl

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// IsExist determines if a file or directory exists.
func IsExist(path string) bool {
	_, err := os.Stat(path)
	return err == nil || os.IsExist(err)
}

// IsDir determines if the given path is a directory.
func IsDir(path string) bool {
	s, err := os.Stat(path)
	if err != nil {
		return false
	}
	return s.IsDir()
}

// GetFileExt gets the file extension including the leading dot.
func GetFileExt(name string) string {
	return path.Ext(name)
}

// GetUniqueName returns a collision-free storage name preserving the
// original extension.
func GetUniqueName(fileName string) string {
	return uuid.New().String() + strings.ToLower(GetFileExt(fileName))
}

// PathSuffixCheckAdd appends the suffix when the path does not already
// end with it. Empty paths stay empty.
func PathSuffixCheckAdd(p string, suffix string) string {
	if p == "" {
		return p
	}
	if !strings.HasSuffix(p, suffix) {
		return p + suffix
	}
	return p
}

// CreatePath creates all parent directories of the given file path.
func CreatePath(filePath string, perm os.FileMode) error {
	return os.MkdirAll(filepath.Dir(filePath), perm)
}

// GetExePath returns the directory of the running binary.
func GetExePath() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}
