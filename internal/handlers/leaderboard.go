package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aspira-app/aspira-backend/internal/services"
)

type LeaderboardHandler struct {
	svc services.LeaderboardService
}

func NewLeaderboardHandler(svc services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc}
}

// GET /api/leaderboard?league=<league>&limit=<n>
// League defaults to the caller's own league when omitted; the service
// resolves that from their global progress row.
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	league := c.Query("league")
	if league == "" {
		rank, err := h.svc.GetRank(c.Request.Context(), userID)
		if err != nil {
			RespondServiceError(c, err)
			return
		}
		league = rank.League
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			RespondError(c, http.StatusBadRequest, "invalid_limit", err)
			return
		}
		limit = parsed
	}
	rows, err := h.svc.GetLeaderboard(c.Request.Context(), league, limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"league": league, "users": rows})
}

// GET /api/leaderboard/rank
func (h *LeaderboardHandler) GetRank(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	rank, err := h.svc.GetRank(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, rank)
}
