package telegram

import (
	"context"

	"github.com/mymmrac/telego"
	"github.com/pkg/errors"

	Logger "github.com/AlazarStudio/kchr-tourism-backend/utils/log"
)

// controlChatID is the admin/control channel. Posts originating there are
// internal coordination messages and are never ingested.
const controlChatID = -1002152382917

// Fetcher retrieves the recent update window from the Bot API and keeps only
// channel posts eligible for ingestion. Every pipeline run re-fetches the
// full window; idempotence is handled downstream by the duplicate-title
// guard.
type Fetcher struct {
	bot    BotAPI
	chatID int64
}

func NewFetcher(bot BotAPI, chatID int64) *Fetcher {
	return &Fetcher{bot: bot, chatID: chatID}
}

// FetchChannelPosts returns recent updates that carry a channel post, in Bot
// API order, excluding posts from the control channel.
func (f *Fetcher) FetchChannelPosts(ctx context.Context) ([]telego.Update, error) {
	updates, err := f.bot.GetUpdates(ctx, &telego.GetUpdatesParams{})
	if err != nil {
		return nil, errors.Wrap(err, "get updates from Telegram")
	}

	posts := make([]telego.Update, 0, len(updates))
	for _, update := range updates {
		if update.ChannelPost == nil {
			continue
		}
		if update.ChannelPost.Chat.ID == controlChatID {
			continue
		}
		posts = append(posts, update)
	}

	Logger.Log.Debugf("fetched %d updates for chat %d, %d channel posts kept", len(updates), f.chatID, len(posts))
	return posts, nil
}
