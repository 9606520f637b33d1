package server

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"

	"github.com/AlazarStudio/kchr-tourism-backend/telegram"
	Logger "github.com/AlazarStudio/kchr-tourism-backend/utils/log"
)

// IngestNews handles GET /api/news/telegram: one synchronous ingestion pass
// over the recent channel-post window, publishing groups tagged with the
// news tag. The response lists every group that passed the tag gate, whether
// or not it persisted.
func (h *Handlers) IngestNews(c *gin.Context) {
	h.runIngestion(c, telegram.KindNews, h.newsTag)
}

// IngestStories handles GET /api/stories/telegram.
func (h *Handlers) IngestStories(c *gin.Context) {
	h.runIngestion(c, telegram.KindStories, h.storiesTag)
}

func (h *Handlers) runIngestion(c *gin.Context, kind telegram.ContentKind, tag string) {
	summaries, err := h.pipeline.Run(c.Request.Context(), kind, tag)
	if err != nil {
		Logger.Log.Errorf("fail to ingest %s from Telegram: %s", kind, err)
		sentry.CaptureException(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages from Telegram API"})
		return
	}
	c.JSON(http.StatusOK, summaries)
}
