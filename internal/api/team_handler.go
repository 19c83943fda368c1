package api

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/innovatefest/hackathon-api/internal/models"
	"github.com/innovatefest/hackathon-api/internal/services"
)

// TeamHandler serves the team directory and results
type TeamHandler struct {
	teamService services.TeamService
	timeout     time.Duration
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamService services.TeamService, timeout time.Duration) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
		timeout:     timeout,
	}
}

// Search lists teams matching ?q= by team name, member name or email
func (h *TeamHandler) Search(c *gin.Context) {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	teams, err := h.teamService.Search(ctx, c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

// Get returns one team with members and scores
func (h *TeamHandler) Get(c *gin.Context) {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	team, err := h.teamService.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

// Update edits the project fields of a team (Admin only)
func (h *TeamHandler) Update(c *gin.Context) {
	var patch models.TeamPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "invalid team update", err)
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	team, err := h.teamService.Update(ctx, c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"team":    team,
	})
}

// Leaderboard returns the ranked results, as CSV when ?format=csv (Admin only)
func (h *TeamHandler) Leaderboard(c *gin.Context) {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	if c.Query("format") == "csv" {
		var buf bytes.Buffer
		if err := h.teamService.ExportLeaderboard(ctx, &buf); err != nil {
			respondError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="leaderboard.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
		return
	}

	entries, err := h.teamService.Leaderboard(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
