package searchapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inkwell-org/backend/internal/orm"
)

const maxResults = 50

type SearchServer struct {
	log *zap.Logger
	db  *orm.PostgresClient
}

func NewSearchServer(log *zap.Logger, db *orm.PostgresClient) *SearchServer {
	return &SearchServer{
		log: log,
		db:  db,
	}
}

// Search matches q as a case-insensitive substring of article titles and
// content. An empty query returns an empty list.
func (s *SearchServer) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusOK, []interface{}{})
		return
	}

	articles, err := s.db.SearchArticles(q, maxResults)
	if err != nil {
		s.log.Error("error searching articles", zap.String("query", q), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, articles)
}
