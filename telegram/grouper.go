package telegram

import (
	"strconv"

	"github.com/mymmrac/telego"
)

// PostGroup is one logical channel post. Multi-photo posts arrive from the
// Bot API as several updates sharing a media group id; ungrouped posts form
// singleton groups keyed by their update id. Every fetched post belongs to
// exactly one group.
type PostGroup struct {
	Key   string
	Posts []telego.Message
}

// First returns the group's leading post, which carries the caption.
func (g *PostGroup) First() telego.Message {
	return g.Posts[0]
}

// GroupPosts partitions updates into groups. Group order follows the first
// occurrence of each key in the batch, post order within a group follows the
// batch order.
func GroupPosts(updates []telego.Update) []*PostGroup {
	byKey := make(map[string]*PostGroup)
	ordered := []*PostGroup{}

	for _, update := range updates {
		post := update.ChannelPost
		if post == nil {
			continue
		}

		key := post.MediaGroupID
		if key == "" {
			key = strconv.Itoa(update.UpdateID)
		}

		group, ok := byKey[key]
		if !ok {
			group = &PostGroup{Key: key}
			byKey[key] = group
			ordered = append(ordered, group)
		}
		group.Posts = append(group.Posts, *post)
	}

	return ordered
}
