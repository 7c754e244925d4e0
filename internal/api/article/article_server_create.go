package articleapi

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cachepkg "github.com/inkwell-org/backend/internal/cache"
	eventpkg "github.com/inkwell-org/backend/internal/event"
	"github.com/inkwell-org/backend/internal/lib"
	"github.com/inkwell-org/backend/internal/middleware"
	"github.com/inkwell-org/backend/internal/orm"
)

type createArticleRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Content       string   `json:"content"`
	CoverImageURL string   `json:"coverImageUrl"`
	CategoryIDs   []string `json:"categoryIds"`
}

func (s *ArticleServer) Create(c *gin.Context) {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		s.log.Error("cannot get user from context", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article data"})
		return
	}

	keyErrors, err := lib.ValidateJSON(body, lib.ArticleCreateSchema())
	if err != nil || len(keyErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article data"})
		return
	}

	var request createArticleRequest
	if err := json.Unmarshal(body, &request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article data"})
		return
	}

	article := &orm.Article{
		Title:         request.Title,
		Description:   request.Description,
		Content:       request.Content,
		CoverImageURL: request.CoverImageURL,
		AuthorID:      identity.UserID,
		AuthorName:    identity.Name,
		AuthorEmail:   identity.Email,
	}
	if len(request.CategoryIDs) > 0 {
		categoryIDs, err := json.Marshal(request.CategoryIDs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article data"})
			return
		}
		article.CategoryIDs = categoryIDs
	}

	if err := s.db.InsertArticle(article); err != nil {
		s.log.Error("error inserting article", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create article"})
		return
	}

	s.cache.Invalidate(c.Request.Context(), cachepkg.ArticleListKey)
	s.publishCreated(c, article)

	c.JSON(http.StatusCreated, article)
}

func (s *ArticleServer) publishCreated(c *gin.Context, article *orm.Article) {
	if s.broker == nil {
		return
	}
	message := eventpkg.ArticleCreatedMessage{
		ID:       article.ID.String(),
		AuthorID: article.AuthorID.String(),
	}
	if err := s.broker.WriteMessage(c.Request.Context(), eventpkg.ARTICLE_CREATED, message); err != nil {
		s.log.Error("error publishing article created event", zap.Error(err))
	}
}
