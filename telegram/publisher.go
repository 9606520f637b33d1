package telegram

import (
	"context"
	"fmt"

	"github.com/AlazarStudio/kchr-tourism-backend/content"
)

// ContentKind selects the destination table for published groups.
type ContentKind string

const (
	KindNews    ContentKind = "news"
	KindStories ContentKind = "stories"
)

// Publisher persists one parsed group as a content record through the
// content store. The store's duplicate-title pre-check is the pipeline's
// only idempotence guard.
type Publisher struct {
	creator content.Creator
}

func NewPublisher(creator content.Creator) *Publisher {
	return &Publisher{creator: creator}
}

// Publish writes the record. Returns content.ErrDuplicateTitle when the
// title was already ingested; the caller decides whether that is fatal.
func (p *Publisher) Publish(ctx context.Context, kind ContentKind, parsed *ParsedContent, imageURLs []string) error {
	rec := content.Record{
		Title:  parsed.Title,
		Date:   parsed.Day,
		Text:   parsed.Text,
		Images: imageURLs,
	}

	var err error
	switch kind {
	case KindNews:
		_, err = p.creator.CreateNews(ctx, rec)
	case KindStories:
		_, err = p.creator.CreateStory(ctx, rec)
	default:
		err = fmt.Errorf("unknown content kind %q", kind)
	}
	return err
}
