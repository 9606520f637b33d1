package telegram

import (
	"context"
	"time"

	"github.com/mymmrac/telego"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/AlazarStudio/kchr-tourism-backend/filestore"
	Logger "github.com/AlazarStudio/kchr-tourism-backend/utils/log"
)

const (
	// downloadConcurrency bounds simultaneous photo transfers per group.
	downloadConcurrency = 4
	// downloadTimeout bounds one photo transfer end to end (path resolution
	// plus CDN fetch); a stuck transfer must not hang the request.
	downloadTimeout = 45 * time.Second
)

// Downloader mirrors post photos into the file store. Storage keys are
// derived from the Telegram file id, so repeated ingestion runs rewrite the
// same files instead of accumulating copies.
type Downloader struct {
	bot   BotAPI
	store filestore.CollectedFileStore
}

func NewDownloader(bot BotAPI, store filestore.CollectedFileStore) *Downloader {
	return &Downloader{bot: bot, store: store}
}

// DownloadPhotos fetches the highest-resolution variant of every photo in
// the group. Transfers run concurrently but results keep the group's post
// order. A failed transfer is logged and dropped; the rest of the group
// proceeds.
func (d *Downloader) DownloadPhotos(ctx context.Context, group *PostGroup) []string {
	keys := make([]string, len(group.Posts))

	g := new(errgroup.Group)
	g.SetLimit(downloadConcurrency)
	for i, post := range group.Posts {
		if len(post.Photo) == 0 {
			continue
		}
		// Variants are ordered by resolution ascending; take the last.
		photo := post.Photo[len(post.Photo)-1]
		g.Go(func() error {
			key, err := d.downloadOne(ctx, photo.FileID)
			if err != nil {
				Logger.Log.WithField("file_id", photo.FileID).Error("fail to download photo: ", err)
				return nil
			}
			keys[i] = key
			return nil
		})
	}
	g.Wait()

	downloaded := make([]string, 0, len(keys))
	for _, key := range keys {
		if key != "" {
			downloaded = append(downloaded, key)
		}
	}
	return downloaded
}

func (d *Downloader) downloadOne(ctx context.Context, fileID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	file, err := d.bot.GetFile(ctx, &telego.GetFileParams{FileID: fileID})
	if err != nil {
		return "", errors.Wrap(err, "resolve file path")
	}

	url := d.bot.FileDownloadURL(file.FilePath)
	key, err := d.store.FetchAndStore(ctx, url, fileID+".jpg")
	if err != nil {
		return "", errors.Wrap(err, "fetch photo")
	}
	return key, nil
}
