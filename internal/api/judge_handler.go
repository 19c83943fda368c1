package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/innovatefest/hackathon-api/internal/models"
	"github.com/innovatefest/hackathon-api/internal/services"
)

// JudgeHandler handles judging operations
type JudgeHandler struct {
	scoringService services.ScoringService
	timeout        time.Duration
}

// NewJudgeHandler creates a new judge handler with service injection
func NewJudgeHandler(scoringService services.ScoringService, timeout time.Duration) *JudgeHandler {
	return &JudgeHandler{
		scoringService: scoringService,
		timeout:        timeout,
	}
}

// Criteria returns the scoring rubric
func (h *JudgeHandler) Criteria(c *gin.Context) {
	c.JSON(http.StatusOK, h.scoringService.Rubric())
}

// ListTeams returns the teams assigned to :judgeId with hasScored flags
func (h *JudgeHandler) ListTeams(c *gin.Context) {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	teams, err := h.scoringService.ListAssignedTeams(ctx, c.Param("judgeId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

// SubmitScore records the calling judge's score for one team
func (h *JudgeHandler) SubmitScore(c *gin.Context) {
	var req models.ScoreSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "teamId and numeric criteria are required", err)
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	score, err := h.scoringService.SubmitScore(ctx, req.TeamID, c.Param("judgeId"), req.Criteria, req.Comments)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"totalScore": score.TotalScore,
		"score":      score,
	})
}

// AssignTeams assigns teams to :judgeId (Admin only)
func (h *JudgeHandler) AssignTeams(c *gin.Context) {
	var req models.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "teamIds is required", err)
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	assigned, err := h.scoringService.AssignTeams(ctx, c.Param("judgeId"), req.TeamIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"assigned": assigned,
	})
}
