package telegram

import (
	"context"
	"errors"

	"github.com/getsentry/sentry-go"
	"golang.org/x/sync/errgroup"

	"github.com/AlazarStudio/kchr-tourism-backend/content"
	"github.com/AlazarStudio/kchr-tourism-backend/filestore"
	Logger "github.com/AlazarStudio/kchr-tourism-backend/utils/log"
)

// groupConcurrency bounds how many groups are processed at once. Each group
// additionally bounds its own photo transfers, see downloader.go.
const groupConcurrency = 4

// Photo is one mirrored image in a summary.
type Photo struct {
	URL string `json:"url"`
}

// Summary is the per-group ingestion report returned to the caller. It is
// produced for every group that passed the caption-tag gate, whether or not
// the record was persisted (a duplicate title, for instance, only logs).
type Summary struct {
	MessageID int     `json:"message_id"`
	Caption   string  `json:"caption"`
	Date      string  `json:"date"`
	Title     string  `json:"title"`
	Text      string  `json:"text"`
	Photos    []Photo `json:"photos"`
}

// Pipeline wires Fetcher -> GroupPosts -> ParseCaption -> Downloader ->
// Publisher. It holds no state between runs: every run re-fetches the full
// recent window and relies on the duplicate-title guard for idempotence.
type Pipeline struct {
	fetcher    *Fetcher
	downloader *Downloader
	publisher  *Publisher
	store      filestore.CollectedFileStore
}

func NewPipeline(bot BotAPI, store filestore.CollectedFileStore, creator content.Creator, chatID int64) *Pipeline {
	return &Pipeline{
		fetcher:    NewFetcher(bot, chatID),
		downloader: NewDownloader(bot, store),
		publisher:  NewPublisher(creator),
		store:      store,
	}
}

// Run executes one ingestion pass for the given kind and caption tag and
// returns the summaries in group order. Only the upstream fetch can fail the
// run as a whole; per-group problems are logged and the remaining groups
// continue.
func (p *Pipeline) Run(ctx context.Context, kind ContentKind, tag string) ([]Summary, error) {
	updates, err := p.fetcher.FetchChannelPosts(ctx)
	if err != nil {
		return nil, err
	}

	groups := GroupPosts(updates)
	results := make([]*Summary, len(groups))

	g := new(errgroup.Group)
	g.SetLimit(groupConcurrency)
	for i, group := range groups {
		g.Go(func() error {
			results[i] = p.processGroup(ctx, kind, tag, group)
			return nil
		})
	}
	g.Wait()

	summaries := []Summary{}
	for _, result := range results {
		if result != nil {
			summaries = append(summaries, *result)
		}
	}
	return summaries, nil
}

// processGroup handles one logical post. Returns nil when the caption gate
// rejects the group.
func (p *Pipeline) processGroup(ctx context.Context, kind ContentKind, tag string, group *PostGroup) *Summary {
	first := group.First()

	parsed := ParseCaption(first, tag)
	if parsed == nil {
		return nil
	}

	keys := p.downloader.DownloadPhotos(ctx, group)
	photos := make([]Photo, 0, len(keys))
	urls := make([]string, 0, len(keys))
	for _, key := range keys {
		url := p.store.GetUrlFromKey(key)
		photos = append(photos, Photo{URL: url})
		urls = append(urls, url)
	}

	if err := p.publisher.Publish(ctx, kind, parsed, urls); err != nil {
		Logger.Log.Errorf("fail to publish %s %q (message %d): %s", kind, parsed.Title, first.MessageID, err)
		if !errors.Is(err, content.ErrDuplicateTitle) {
			sentry.CaptureException(err)
		}
	}

	return &Summary{
		MessageID: first.MessageID,
		Caption:   parsed.Caption,
		Date:      parsed.Date,
		Title:     parsed.Title,
		Text:      parsed.Text,
		Photos:    photos,
	}
}
