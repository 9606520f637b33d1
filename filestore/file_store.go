// Package filestore persists media files fetched from external sources or
// produced by the upload pipeline, and maps storage keys to the public URLs
// the API hands out.
package filestore

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/AlazarStudio/kchr-tourism-backend/utils"
)

// Timeout for a single outbound media fetch. The source API has no way to
// signal a stuck transfer, so every fetch is bounded.
const fetchTimeout = 30 * time.Second

type CollectedFileStore interface {
	// FetchAndStore downloads url and persists it under fileName, returning
	// the storage key. The key is deterministic for a given fileName, so
	// re-fetching overwrites in place.
	FetchAndStore(ctx context.Context, url string, fileName string) (key string, err error)
	// Store persists already-materialized bytes under fileName.
	Store(ctx context.Context, fileName string, data io.Reader) (key string, err error)
	// GetUrlFromKey maps a storage key to the public URL served to clients.
	GetUrlFromKey(key string) string
	CleanUp()
}

func fetch(ctx context.Context, url string) (*http.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		cancel()
		return nil, err
	}
	// cancel must outlive the body read; tie it to body close.
	resp.Body = &cancelOnCloseBody{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

type cancelOnCloseBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelOnCloseBody) Close() error {
	defer b.cancel()
	return b.ReadCloser.Close()
}

// storageKey derives the key from the explicit file name when given,
// otherwise falls back to the md5 of the url plus its extension.
func storageKey(url, fileName string) (string, error) {
	if fileName != "" {
		return fileName, nil
	}
	key, err := utils.TextToMd5Hash(url)
	if err != nil {
		return "", err
	}
	return key + utils.GetUrlExtNameWithDot(url), nil
}
