package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MohamedBenMassouda/Survey/middleware"
	"github.com/MohamedBenMassouda/Survey/models"
	"github.com/MohamedBenMassouda/Survey/services"
)

type SurveyController struct {
	surveys     *services.SurveyService
	tokens      *services.TokenService
	invitations *services.InvitationService
	analytics   *services.AnalyticsService
	frontendURL string
}

func NewSurveyController(
	surveys *services.SurveyService,
	tokens *services.TokenService,
	invitations *services.InvitationService,
	analytics *services.AnalyticsService,
	frontendURL string,
) *SurveyController {
	return &SurveyController{
		surveys:     surveys,
		tokens:      tokens,
		invitations: invitations,
		analytics:   analytics,
		frontendURL: frontendURL,
	}
}

// GET /api/surveys
func (ctl *SurveyController) List(c *gin.Context) {
	q := services.SurveyQuery{
		Search:        c.Query("search"),
		SortBy:        c.Query("sort_by"),
		SortAscending: strings.EqualFold(c.Query("sort_dir"), "asc"),
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "10"))

	if status := c.Query("status"); status != "" {
		q.Status = &status
	}
	if creator := c.Query("creator_id"); creator != "" {
		id, err := uuid.Parse(creator)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid creator_id"})
			return
		}
		q.CreatorID = &id
	}
	var ok bool
	if q.StartDateFrom, ok = parseTimeQuery(c, "start_date_from"); !ok {
		return
	}
	if q.StartDateTo, ok = parseTimeQuery(c, "start_date_to"); !ok {
		return
	}

	page, err := ctl.surveys.List(q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/surveys/published
func (ctl *SurveyController) ListPublished(c *gin.Context) {
	pageNum, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	page, err := ctl.surveys.ListPublished(pageNum, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// POST /api/surveys
func (ctl *SurveyController) Create(c *gin.Context) {
	admin := c.MustGet(middleware.CtxAdmin).(*models.Admin)

	var req services.CreateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	summary, err := ctl.surveys.Create(req, admin.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, summary)
}

// GET /api/surveys/:id
func (ctl *SurveyController) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	survey, err := ctl.surveys.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	detail := gin.H{
		"id":          survey.ID,
		"title":       survey.Title,
		"description": survey.Description,
		"status":      survey.Status,
		"start_date":  survey.StartDate,
		"end_date":    survey.EndDate,
		"questions":   survey.Questions,
		"created_at":  survey.CreatedAt,
	}
	if survey.Creator != nil {
		detail["created_by"] = gin.H{
			"id":        survey.Creator.ID,
			"email":     survey.Creator.Email,
			"full_name": survey.Creator.FullName,
		}
	}
	c.JSON(http.StatusOK, detail)
}

// PUT /api/surveys/:id
func (ctl *SurveyController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.UpdateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	summary, err := ctl.surveys.Update(id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// DELETE /api/surveys/:id
func (ctl *SurveyController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctl.surveys.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// POST /api/surveys/:id/publish
func (ctl *SurveyController) Publish(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	summary, err := ctl.surveys.Publish(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// POST /api/surveys/:id/close
func (ctl *SurveyController) Close(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	summary, err := ctl.surveys.Close(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

type generateTokensReq struct {
	Count int `json:"count" binding:"required,min=1"`
}

// POST /api/surveys/:id/tokens
func (ctl *SurveyController) GenerateTokens(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req generateTokensReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	tokens, err := ctl.tokens.Generate(id, req.Count)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"tokens": tokens})
}

// POST /api/surveys/invitations
func (ctl *SurveyController) SendInvitations(c *gin.Context) {
	var req services.SendInvitationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	result, err := ctl.invitations.Send(req, ctl.frontendURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /api/surveys/:id/analytics
func (ctl *SurveyController) Analytics(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	analytics, err := ctl.analytics.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analytics)
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid survey id"})
		return uuid.Nil, false
	}
	return id, true
}

func parseTimeQuery(c *gin.Context, key string) (*time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + key + ", expected RFC3339"})
		return nil, false
	}
	return &t, true
}
