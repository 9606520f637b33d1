// Package telegram implements the channel-post ingestion pipeline: fetch
// recent updates from the Bot API, cluster multi-photo posts by media group,
// parse tag-gated captions, mirror photos into the file store and publish the
// result as content records.
package telegram

import (
	"context"

	"github.com/mymmrac/telego"
)

// BotAPI is the slice of the Bot API the pipeline needs. *telego.Bot
// satisfies it; tests substitute a mock.
type BotAPI interface {
	GetUpdates(ctx context.Context, params *telego.GetUpdatesParams) ([]telego.Update, error)
	GetFile(ctx context.Context, params *telego.GetFileParams) (*telego.File, error)
	FileDownloadURL(filepath string) string
}

// NewBot builds the production telego client.
func NewBot(token string, debug bool) (*telego.Bot, error) {
	if debug {
		return telego.NewBot(token, telego.WithDefaultDebugLogger())
	}
	return telego.NewBot(token, telego.WithDefaultLogger(false, false))
}
