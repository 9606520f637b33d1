// Package server is the HTTP layer: content read endpoints, creation
// endpoints used by the ingestion pipeline, the Telegram trigger routes and
// the upload pipelines.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AlazarStudio/kchr-tourism-backend/content"
	"github.com/AlazarStudio/kchr-tourism-backend/filestore"
	"github.com/AlazarStudio/kchr-tourism-backend/telegram"
	"github.com/AlazarStudio/kchr-tourism-backend/transcode"
)

// Handlers bundles the dependencies shared by all routes. Tags are injected
// from config; nothing here reads process environment.
type Handlers struct {
	store      *content.Store
	pipeline   *telegram.Pipeline
	files      filestore.CollectedFileStore
	transcoder *transcode.Transcoder
	newsTag    string
	storiesTag string
}

func NewHandlers(store *content.Store, pipeline *telegram.Pipeline, files filestore.CollectedFileStore, newsTag, storiesTag string) *Handlers {
	return &Handlers{
		store:      store,
		pipeline:   pipeline,
		files:      files,
		transcoder: transcode.NewTranscoder(),
		newsTag:    newsTag,
		storiesTag: storiesTag,
	}
}

func (h *Handlers) ListNews(c *gin.Context) {
	q := parseListQuery(c)
	news, total, err := h.store.ListNews(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Range", fmt.Sprintf("news %d-%d/%d", q.RangeStart, q.RangeEnd, total))
	c.JSON(http.StatusOK, news)
}

func (h *Handlers) GetNews(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "News not found!"})
		return
	}
	news, err := h.store.GetNews(c.Request.Context(), id)
	if err != nil {
		if content.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "News not found!"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, news)
}

func (h *Handlers) ListStories(c *gin.Context) {
	q := parseListQuery(c)
	stories, total, err := h.store.ListStories(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Range", fmt.Sprintf("stories %d-%d/%d", q.RangeStart, q.RangeEnd, total))
	c.JSON(http.StatusOK, stories)
}

func (h *Handlers) GetStory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stories not found!"})
		return
	}
	story, err := h.store.GetStory(c.Request.Context(), id)
	if err != nil {
		if content.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Stories not found!"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, story)
}

// CreateNewsFromQuery handles GET /api/news/create. All values arrive
// URL-encoded in query parameters; images is a JSON array of public paths.
// The duplicate-title guard rejects re-ingested posts with a 400.
func (h *Handlers) CreateNewsFromQuery(c *gin.Context) {
	rec, ok := recordFromQuery(c)
	if !ok {
		return
	}
	news, err := h.store.CreateNews(c.Request.Context(), rec)
	if err != nil {
		status := http.StatusInternalServerError
		if err == content.ErrDuplicateTitle {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, news)
}

// CreateStoryFromQuery handles GET /api/stories/create.
func (h *Handlers) CreateStoryFromQuery(c *gin.Context) {
	rec, ok := recordFromQuery(c)
	if !ok {
		return
	}
	story, err := h.store.CreateStory(c.Request.Context(), rec)
	if err != nil {
		status := http.StatusInternalServerError
		if err == content.ErrDuplicateTitle {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, story)
}

func recordFromQuery(c *gin.Context) (content.Record, bool) {
	title := c.Query("title")
	date := c.Query("date")
	text := c.Query("text")
	images := c.Query("images")

	if title == "" || date == "" || text == "" || images == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return content.Record{}, false
	}

	parsedDate, err := time.Parse(time.RFC3339, date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
		return content.Record{}, false
	}

	paths, err := decodeImageList(images)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid images"})
		return content.Record{}, false
	}

	return content.Record{Title: title, Date: parsedDate, Text: text, Images: paths}, true
}

func decodeImageList(raw string) ([]string, error) {
	paths := []string{}
	if err := json.Unmarshal([]byte(raw), &paths); err != nil {
		return nil, err
	}
	return paths, nil
}
