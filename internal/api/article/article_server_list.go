package articleapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cachepkg "github.com/inkwell-org/backend/internal/cache"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// List returns articles newest first, optionally filtered to one category.
// The unfiltered first page is served from the response cache when warm.
func (s *ArticleServer) List(c *gin.Context) {
	limit := defaultPageSize
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		if parsed > maxPageSize {
			parsed = maxPageSize
		}
		limit = parsed
	}
	cursor := c.Query("cursor")
	categoryID := c.Query("category")

	cacheable := cursor == "" && categoryID == "" && limit == defaultPageSize
	if cacheable {
		if cached, ok := s.cache.Get(c.Request.Context(), cachepkg.ArticleListKey); ok {
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
			return
		}
	}

	articles, err := s.db.SelectArticlesWithPagination(categoryID, limit, cursor)
	if err != nil {
		s.log.Error("error selecting articles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch articles"})
		return
	}

	if cacheable {
		if payload, err := json.Marshal(articles); err == nil {
			s.cache.Set(c.Request.Context(), cachepkg.ArticleListKey, string(payload))
		}
	}

	c.JSON(http.StatusOK, articles)
}
