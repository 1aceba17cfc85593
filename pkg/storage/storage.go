// Package storage abstracts the remote attachment store. Attachments
// live under `<uid>/<category>/<uniqueName>` paths; the enrichment
// pipeline opens a fresh client per invocation and tears it down in its
// cleanup step, so clients are cheap to construct and never pooled.
package storage

import (
	"fmt"
	"io"

	"github.com/micbed86/FancyNote-sub000/pkg/code"
	"github.com/micbed86/FancyNote-sub000/pkg/storage/aws_s3"
	"github.com/micbed86/FancyNote-sub000/pkg/storage/local_fs"
	"github.com/micbed86/FancyNote-sub000/pkg/storage/webdav"
)

type Type = string

const (
	S3     Type = "s3"
	LOCAL  Type = "localfs"
	WebDAV Type = "webdav"
)

var StorageTypeMap = map[Type]bool{
	S3:     true,
	LOCAL:  true,
	WebDAV: true,
}

// Config unified storage configuration.
type Config struct {
	Type Type `yaml:"type" default:"localfs"`

	// Common settings
	CustomPath string `yaml:"custom-path"`

	// Cloud storage (S3 and S3-compatible endpoints)
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`

	// WebDAV
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Path     string `yaml:"path"`

	// Local FS
	SavePath string `yaml:"save-path" default:"storage/uploads"`
}

// Storager is the remote attachment store contract.
type Storager interface {
	// Connect establishes the connection. Must be called before any
	// other operation; implementations that need no session treat it
	// as a no-op.
	Connect() error
	// Close tears the connection down. Safe to call when Connect failed.
	Close() error
	// Exists checks whether the stored object exists.
	Exists(pathKey string) (bool, error)
	// EnsureDir creates the directory hierarchy for pathKey's parent.
	EnsureDir(pathKey string) error
	// Upload stores the reader's content under pathKey and returns the
	// final stored key.
	Upload(pathKey string, file io.Reader, cType string) (string, error)
	// Download streams the stored object. Caller closes the reader.
	Download(pathKey string) (io.ReadCloser, error)
	// Delete removes the stored object.
	Delete(pathKey string) error
}

// PathKey builds the canonical storage path for a user attachment.
func PathKey(uid int64, category, name string) string {
	return fmt.Sprintf("%d/%s/%s", uid, category, name)
}

// NewClient builds a Storager from the unified config.
func NewClient(config *Config) (Storager, error) {
	if config == nil {
		return nil, code.ErrorInvalidStorageType
	}

	switch config.Type {
	case LOCAL:
		return local_fs.NewClient(&local_fs.Config{
			SavePath:   config.SavePath,
			CustomPath: config.CustomPath,
		})
	case S3:
		return aws_s3.NewClient(&aws_s3.Config{
			Endpoint:        config.Endpoint,
			Region:          config.Region,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		})
	case WebDAV:
		return webdav.NewClient(&webdav.Config{
			Endpoint:   config.Endpoint,
			Path:       config.Path,
			User:       config.User,
			Password:   config.Password,
			CustomPath: config.CustomPath,
		})
	}
	return nil, code.ErrorInvalidStorageType
}
