package articleapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	cachepkg "github.com/inkwell-org/backend/internal/cache"
	"github.com/inkwell-org/backend/internal/lib"
	"github.com/inkwell-org/backend/internal/like"
	"github.com/inkwell-org/backend/internal/middleware"
)

type likeRequest struct {
	ID string `json:"id"`
}

// Like toggles the caller's like on an article and returns the new counter
// and like state.
func (s *ArticleServer) Like(c *gin.Context) {
	userID, err := middleware.GetUserUUID(c)
	if err != nil {
		s.log.Error("cannot get user from context", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
		return
	}

	var request likeRequest
	if err := c.ShouldBindJSON(&request); err != nil || request.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Article id is required"})
		return
	}

	targetID, err := uuid.Parse(request.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	if _, err := s.db.SelectArticleByID(request.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		s.log.Error("error selecting article by id", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
		return
	}

	result, err := s.likes.Toggle(c.Request.Context(), userID, targetID, like.KindArticle)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		s.log.Error("error toggling article like",
			zap.String("article_id", targetID.String()),
			zap.String("user_id", userID.String()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like article"})
		return
	}

	s.cache.Invalidate(c.Request.Context(), cachepkg.ArticleListKey)
	c.JSON(http.StatusOK, result)
}
