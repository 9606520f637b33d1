package filestore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// LocalFileStore keeps media on local disk under dir, served by the HTTP
// layer at publicPath (e.g. "/uploads"). The directory is created on demand.
type LocalFileStore struct {
	dir        string
	publicPath string
}

func NewLocalFileStore(dir string) (*LocalFileStore, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, errors.Wrap(err, "create uploads dir")
	}
	return &LocalFileStore{dir: dir, publicPath: "/uploads"}, nil
}

// Dir returns the root directory, used to mount the static file route.
func (s *LocalFileStore) Dir() string {
	return s.dir
}

func (s *LocalFileStore) FetchAndStore(ctx context.Context, url string, fileName string) (string, error) {
	response, err := fetch(ctx, url)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %d", url, response.StatusCode)
	}

	key, err := storageKey(url, fileName)
	if err != nil {
		return "", err
	}
	return key, s.write(key, response.Body)
}

func (s *LocalFileStore) Store(_ context.Context, fileName string, data io.Reader) (string, error) {
	if fileName == "" {
		return "", errors.New("file name is required")
	}
	return fileName, s.write(fileName, data)
}

func (s *LocalFileStore) write(key string, data io.Reader) error {
	file, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return err
	}
	defer file.Close()

	// io.Copy streams to disk without buffering the whole file.
	_, err = io.Copy(file, data)
	return err
}

func (s *LocalFileStore) GetUrlFromKey(key string) string {
	return s.publicPath + "/" + key
}

func (s *LocalFileStore) CleanUp() {}
