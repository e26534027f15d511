package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// surveySortColumns is the allow-list of caller-facing sort fields and the
// columns they map to. Anything else falls back to created_at descending.
var surveySortColumns = map[string]string{
	"title":     "title",
	"createdat": "created_at",
	"status":    "status",
}

// SurveyQuery describes an administrative survey listing request. Optional
// filters compose conjunctively; zero values mean "not filtered".
type SurveyQuery struct {
	Status        *string
	CreatorID     *uuid.UUID
	StartDateFrom *time.Time
	StartDateTo   *time.Time
	Search        string
	SortBy        string
	SortAscending bool
	Page          int
	PageSize      int
}

// Normalize coerces pagination bounds and resolves the sort field against the
// allow-list. Bad input never errors here: out-of-range pages clamp and
// unknown sort fields fall back to the default ordering.
func (q *SurveyQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	column, ok := surveySortColumns[strings.ToLower(strings.TrimSpace(q.SortBy))]
	if ok {
		q.SortBy = column
	} else {
		q.SortBy = "created_at"
		q.SortAscending = false
	}
	q.Search = strings.TrimSpace(q.Search)
}

func (q *SurveyQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// SurveySummary is the listing projection: survey header plus live-computed
// question and completed-response counts.
type SurveySummary struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Status        string    `json:"status"`
	CreatedByName string    `json:"created_by_name"`
	QuestionCount int       `json:"question_count"`
	ResponseCount int       `json:"response_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type SurveyPage struct {
	Items       []SurveySummary `json:"items"`
	TotalCount  int64           `json:"total_count"`
	PageNumber  int             `json:"page_number"`
	PageSize    int             `json:"page_size"`
	TotalPages  int             `json:"total_pages"`
	HasPrevious bool            `json:"has_previous"`
	HasNext     bool            `json:"has_next"`
}

// NewSurveyPage assembles page metadata from a result slice and the total
// count computed before pagination was applied.
func NewSurveyPage(items []SurveySummary, total int64, page, size int) *SurveyPage {
	if items == nil {
		items = []SurveySummary{}
	}
	totalPages := int((total + int64(size) - 1) / int64(size))
	return &SurveyPage{
		Items:       items,
		TotalCount:  total,
		PageNumber:  page,
		PageSize:    size,
		TotalPages:  totalPages,
		HasPrevious: page > 1,
		HasNext:     page < totalPages,
	}
}
