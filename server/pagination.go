package server

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/AlazarStudio/kchr-tourism-backend/content"
)

// Admin clients speak the react-admin list protocol: range and sort arrive
// as JSON arrays in query parameters, e.g. range=[0,9]&sort=["title","ASC"],
// and the response carries a Content-Range header with the total count.

const (
	defaultRangeEnd  = 9
	defaultSortField = "createdAt"
	defaultSortOrder = "desc"
)

func parseListQuery(c *gin.Context) content.ListQuery {
	q := content.ListQuery{
		RangeStart: 0,
		RangeEnd:   defaultRangeEnd,
		SortField:  defaultSortField,
		SortOrder:  defaultSortOrder,
	}

	if raw := c.Query("range"); raw != "" {
		var window [2]int
		if err := json.Unmarshal([]byte(raw), &window); err == nil {
			q.RangeStart, q.RangeEnd = window[0], window[1]
		}
	}

	if raw := c.Query("sort"); raw != "" {
		var sort [2]string
		if err := json.Unmarshal([]byte(raw), &sort); err == nil {
			q.SortField, q.SortOrder = sort[0], sort[1]
		}
	}

	return q
}
