// Package content owns persistence of published content records. The
// Telegram publisher and the HTTP creation endpoints all go through the same
// Store so the duplicate-title guard lives in exactly one place.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/AlazarStudio/kchr-tourism-backend/model"
)

// ErrDuplicateTitle is returned when a record with the same title already
// exists. The check and the subsequent insert are two separate store
// operations, so two near-simultaneous creations can still both pass the
// check; callers treat the guard as best-effort.
var ErrDuplicateTitle = errors.New("record with this title already exists")

// Record is the creation payload shared by news and stories.
type Record struct {
	Title  string
	Date   time.Time
	Text   string
	Images []string
}

// Creator is the narrow interface the Telegram publisher depends on.
type Creator interface {
	CreateNews(ctx context.Context, rec Record) (*model.News, error)
	CreateStory(ctx context.Context, rec Record) (*model.Story, error)
}

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateNews(ctx context.Context, rec Record) (*model.News, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.News{}).Where("title = ?", rec.Title).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateTitle
	}

	images, err := imagesToJSON(rec.Images)
	if err != nil {
		return nil, err
	}

	news := model.News{
		Title:  rec.Title,
		Date:   rec.Date,
		Text:   rec.Text,
		Images: images,
	}
	if err := s.db.WithContext(ctx).Create(&news).Error; err != nil {
		return nil, err
	}
	return &news, nil
}

func (s *Store) CreateStory(ctx context.Context, rec Record) (*model.Story, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Story{}).Where("title = ?", rec.Title).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateTitle
	}

	images, err := imagesToJSON(rec.Images)
	if err != nil {
		return nil, err
	}

	story := model.Story{
		Title:  rec.Title,
		Date:   rec.Date,
		Text:   rec.Text,
		Images: images,
	}
	if err := s.db.WithContext(ctx).Create(&story).Error; err != nil {
		return nil, err
	}
	return &story, nil
}

// imagesToJSON stores an empty list as "[]", not SQL NULL, so API consumers
// always see an array.
func imagesToJSON(images []string) (datatypes.JSON, error) {
	if images == nil {
		images = []string{}
	}
	raw, err := json.Marshal(images)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
