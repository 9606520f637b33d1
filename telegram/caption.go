package telegram

import (
	"strings"
	"time"

	"github.com/mymmrac/telego"
)

// paragraphSep splits a caption into paragraphs.
const paragraphSep = "\n\n"

// ParsedContent is what a tag-gated caption yields.
type ParsedContent struct {
	Title   string
	Text    string
	Caption string    // caption with the tag stripped and trimmed
	Date    string    // calendar date YYYY-MM-DD from the post timestamp
	Day     time.Time // the same date as an instant at UTC midnight
}

// ParseCaption extracts content from a group's leading post. A post opts into
// ingestion by ending its caption with tag; everything else returns nil and
// is skipped. The tag is stripped before parsing.
//
// When the caption has more than one paragraph the first becomes the title
// and the rest, rejoined, become the text. A single-paragraph caption yields
// an empty title and empty text: long-standing behavior inherited from the
// editors' workflow, preserved as is.
func ParseCaption(post telego.Message, tag string) *ParsedContent {
	caption := post.Caption
	if !strings.HasSuffix(caption, tag) {
		return nil
	}

	caption = strings.TrimSpace(strings.TrimSuffix(caption, tag))
	parts := strings.Split(caption, paragraphSep)

	var title, text string
	if len(parts) > 1 {
		title = parts[0]
		text = strings.Join(parts[1:], paragraphSep)
	}

	day := time.Unix(post.Date, 0).UTC()
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	return &ParsedContent{
		Title:   title,
		Text:    text,
		Caption: caption,
		Date:    midnight.Format("2006-01-02"),
		Day:     midnight,
	}
}
