package categoryapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// List returns all categories, predefined ones first.
func (s *CategoryServer) List(c *gin.Context) {
	categories, err := s.db.SelectCategories()
	if err != nil {
		s.log.Error("error selecting categories", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, categories)
}
