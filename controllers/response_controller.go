package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MohamedBenMassouda/Survey/services"
)

type ResponseController struct {
	responses *services.ResponseService
}

func NewResponseController(responses *services.ResponseService) *ResponseController {
	return &ResponseController{responses: responses}
}

// GET /api/respond/:token — validate the token, start the response, return
// the survey the respondent may answer.
func (ctl *ResponseController) Start(c *gin.Context) {
	survey, err := ctl.responses.Start(c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          survey.ID,
		"title":       survey.Title,
		"description": survey.Description,
		"questions":   survey.Questions,
	})
}

type submitResponseReq struct {
	Answers []services.SubmitAnswerRequest `json:"answers" binding:"required"`
}

// POST /api/respond/:token — submit answers, complete the response and
// consume the token.
func (ctl *ResponseController) Submit(c *gin.Context) {
	var req submitResponseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	receipt, err := ctl.responses.Submit(services.SubmitResponseRequest{
		Token:   c.Param("token"),
		Answers: req.Answers,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}
