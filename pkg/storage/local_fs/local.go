package local_fs

import (
	"io"
	"os"
	"path/filepath"

	"github.com/micbed86/FancyNote-sub000/pkg/fileurl"

	"github.com/pkg/errors"
)

type Config struct {
	SavePath   string `yaml:"save-path" default:"storage/uploads"`
	CustomPath string `yaml:"custom-path"`
}

// LocalFS stores attachments on the local filesystem, mainly for
// development and single-node deployments.
type LocalFS struct {
	Config *Config
}

func NewClient(conf *Config) (*LocalFS, error) {
	if conf.SavePath == "" {
		conf.SavePath = "storage/uploads"
	}
	return &LocalFS{Config: conf}, nil
}

func (l *LocalFS) fullPath(pathKey string) string {
	return filepath.Join(l.Config.SavePath, l.Config.CustomPath, pathKey)
}

func (l *LocalFS) Connect() error {
	return os.MkdirAll(l.Config.SavePath, os.ModePerm)
}

func (l *LocalFS) Close() error {
	return nil
}

func (l *LocalFS) Exists(pathKey string) (bool, error) {
	return fileurl.IsExist(l.fullPath(pathKey)), nil
}

func (l *LocalFS) EnsureDir(pathKey string) error {
	return os.MkdirAll(filepath.Dir(l.fullPath(pathKey)), os.ModePerm)
}

func (l *LocalFS) Upload(pathKey string, file io.Reader, cType string) (string, error) {
	full := l.fullPath(pathKey)
	if err := os.MkdirAll(filepath.Dir(full), os.ModePerm); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	out, err := os.Create(full)
	if err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	return pathKey, nil
}

func (l *LocalFS) Download(pathKey string) (io.ReadCloser, error) {
	f, err := os.Open(l.fullPath(pathKey))
	if err != nil {
		return nil, errors.Wrap(err, "local_fs")
	}
	return f, nil
}

func (l *LocalFS) Delete(pathKey string) error {
	err := os.Remove(l.fullPath(pathKey))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "local_fs")
	}
	return nil
}
