package articleapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inkwell-org/backend/internal/lib"
	"github.com/inkwell-org/backend/internal/orm"
)

type articleWithStats struct {
	*orm.Article
	lib.ReadingStats
}

func (s *ArticleServer) Get(c *gin.Context) {
	id := c.Param("id")
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
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch article"})
		return
	}

	c.JSON(http.StatusOK, articleWithStats{
		Article:      article,
		ReadingStats: lib.GetReadingStats(article.Content),
	})
}
