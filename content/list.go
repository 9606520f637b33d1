package content

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/AlazarStudio/kchr-tourism-backend/model"
)

// ListQuery carries the react-admin style list window. RangeStart/RangeEnd
// are inclusive indices into the sorted result set.
type ListQuery struct {
	RangeStart int
	RangeEnd   int
	SortField  string
	SortOrder  string
}

// sortColumns whitelists sortable fields so a client-supplied sort parameter
// never reaches the SQL string directly.
var sortColumns = map[string]string{
	"id":        "id",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"date":      "date",
}

func (q ListQuery) orderClause() string {
	column, ok := sortColumns[q.SortField]
	if !ok {
		column = "created_at"
	}
	order := "DESC"
	if q.SortOrder == "asc" || q.SortOrder == "ASC" {
		order = "ASC"
	}
	return column + " " + order
}

func (q ListQuery) limit() int {
	return q.RangeEnd - q.RangeStart + 1
}

func (s *Store) ListNews(ctx context.Context, q ListQuery) ([]model.News, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.News{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	news := []model.News{}
	err := s.db.WithContext(ctx).
		Order(q.orderClause()).
		Offset(q.RangeStart).
		Limit(q.limit()).
		Find(&news).Error
	return news, total, err
}

func (s *Store) GetNews(ctx context.Context, id int) (*model.News, error) {
	var news model.News
	if err := s.db.WithContext(ctx).First(&news, id).Error; err != nil {
		return nil, err
	}
	return &news, nil
}

func (s *Store) ListStories(ctx context.Context, q ListQuery) ([]model.Story, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Story{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	stories := []model.Story{}
	err := s.db.WithContext(ctx).
		Order(q.orderClause()).
		Offset(q.RangeStart).
		Limit(q.limit()).
		Find(&stories).Error
	return stories, total, err
}

func (s *Store) GetStory(ctx context.Context, id int) (*model.Story, error) {
	var story model.Story
	if err := s.db.WithContext(ctx).First(&story, id).Error; err != nil {
		return nil, err
	}
	return &story, nil
}

// IsNotFound reports whether err means the requested record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
