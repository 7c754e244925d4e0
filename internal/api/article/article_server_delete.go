package articleapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	cachepkg "github.com/inkwell-org/backend/internal/cache"
	"github.com/inkwell-org/backend/internal/middleware"
)

func (s *ArticleServer) Delete(c *gin.Context) {
	userID, err := middleware.GetUserUUID(c)
	if err != nil {
		s.log.Error("cannot get user from context", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
		return
	}

	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Article ID is required"})
		return
	}
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	article, err := s.db.SelectArticleByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		s.log.Error("error selecting article by id", zap.String("article_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete article"})
		return
	}

	if article.AuthorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own articles"})
		return
	}

	if err := s.db.DeleteArticle(article); err != nil {
		s.log.Error("error deleting article", zap.String("article_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete article"})
		return
	}

	s.cache.Invalidate(c.Request.Context(), cachepkg.ArticleListKey)
	c.JSON(http.StatusOK, gin.H{"message": "Article deleted successfully"})
}
