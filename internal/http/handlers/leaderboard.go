package handlers

import (
	"errors"
	"net/http"

	"tetris_webapp/internal/domain"
	"tetris_webapp/internal/logger"
	"tetris_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// список лучших результатов, по убыванию очков
func (h *Handler) GetScores(c *gin.Context) {
	top, err := h.Leaderboard.Top(c.Request.Context())
	if err != nil {
		logger.Error("get scores failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get scores"})
		return
	}

	c.JSON(http.StatusOK, top)
}

// новая запись в таблицу рекордов
func (h *Handler) PostScore(c *gin.Context) {
	var req domain.ScoreSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	id, err := h.Leaderboard.Submit(c.Request.Context(), req)
	if err != nil {
		if status, msg, ok := validationError(err); ok {
			c.JSON(status, gin.H{"error": msg})
			return
		}
		logger.Error("save score failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save score"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func validationError(err error) (int, string, bool) {
	switch {
	case errors.Is(err, service.ErrNameRequired), errors.Is(err, service.ErrScoreRequired):
		return http.StatusBadRequest, "Name and score are required", true
	case errors.Is(err, service.ErrNameTooLong),
		errors.Is(err, service.ErrInvalidScore):
		return http.StatusBadRequest, err.Error(), true
	}
	return 0, "", false
}
