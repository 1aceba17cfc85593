package webdav

import (
	"io"
	"path"

	"github.com/micbed86/FancyNote-sub000/pkg/fileurl"

	"github.com/pkg/errors"
	"github.com/studio-b12/gowebdav"
)

// Config holds the WebDAV connection settings.
type Config struct {
	Endpoint   string `yaml:"endpoint"`
	Path       string `yaml:"path"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	CustomPath string `yaml:"custom-path"`
}

// WebDAV is a per-invocation WebDAV client. Unlike pooled setups, every
// pipeline run constructs and tears down its own instance.
type WebDAV struct {
	Client *gowebdav.Client
	Config *Config
}

// NewClient creates a WebDAV client instance.
func NewClient(conf *Config) (*WebDAV, error) {
	c := gowebdav.NewClient(conf.Endpoint, conf.User, conf.Password)
	return &WebDAV{
		Client: c,
		Config: conf,
	}, nil
}

func (w *WebDAV) key(pathKey string) string {
	return fileurl.PathSuffixCheckAdd(w.Config.CustomPath, "/") + pathKey
}

func (w *WebDAV) Connect() error {
	if err := w.Client.Connect(); err != nil {
		return errors.Wrap(err, "webdav")
	}
	return nil
}

func (w *WebDAV) Close() error {
	// gowebdav keeps no persistent session to tear down
	return nil
}

func (w *WebDAV) Exists(pathKey string) (bool, error) {
	_, err := w.Client.Stat(w.key(pathKey))
	if err != nil {
		if gowebdav.IsErrNotFound(err) {
			return false, nil
		}
		return false, errors.Wrap(err, "webdav")
	}
	return true, nil
}

func (w *WebDAV) EnsureDir(pathKey string) error {
	dir := path.Dir(w.key(pathKey))
	if err := w.Client.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "webdav")
	}
	return nil
}

func (w *WebDAV) Upload(pathKey string, file io.Reader, cType string) (string, error) {
	fileKey := w.key(pathKey)

	if err := w.Client.MkdirAll(path.Dir(fileKey), 0755); err != nil {
		return "", errors.Wrap(err, "webdav")
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return "", errors.Wrap(err, "webdav")
	}

	if err := w.Client.Write(fileKey, content, 0644); err != nil {
		return "", errors.Wrap(err, "webdav")
	}
	return pathKey, nil
}

func (w *WebDAV) Download(pathKey string) (io.ReadCloser, error) {
	rc, err := w.Client.ReadStream(w.key(pathKey))
	if err != nil {
		return nil, errors.Wrap(err, "webdav")
	}
	return rc, nil
}

func (w *WebDAV) Delete(pathKey string) error {
	if err := w.Client.Remove(w.key(pathKey)); err != nil {
		return errors.Wrap(err, "webdav")
	}
	return nil
}
