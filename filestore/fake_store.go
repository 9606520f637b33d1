package filestore

import (
	"context"
	"io"
	"sync"
)

// FakeFileStore records stored files in memory for tests.
type FakeFileStore struct {
	mu    sync.Mutex
	Files map[string][]byte
	// FetchErr, when set, fails every FetchAndStore with this error.
	FetchErr error
}

func NewFakeFileStore() *FakeFileStore {
	return &FakeFileStore{Files: map[string][]byte{}}
}

func (f *FakeFileStore) FetchAndStore(_ context.Context, url string, fileName string) (string, error) {
	if f.FetchErr != nil {
		return "", f.FetchErr
	}
	key, err := storageKey(url, fileName)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Files[key] = []byte(url)
	return key, nil
}

func (f *FakeFileStore) Store(_ context.Context, fileName string, data io.Reader) (string, error) {
	raw, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Files[fileName] = raw
	return fileName, nil
}

func (f *FakeFileStore) GetUrlFromKey(key string) string {
	return "/uploads/" + key
}

func (f *FakeFileStore) CleanUp() {}
