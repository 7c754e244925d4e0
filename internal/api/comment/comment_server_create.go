package commentapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	eventpkg "github.com/inkwell-org/backend/internal/event"
	"github.com/inkwell-org/backend/internal/lib"
	"github.com/inkwell-org/backend/internal/middleware"
	"github.com/inkwell-org/backend/internal/orm"
)

type createCommentRequest struct {
	ArticleID string `json:"articleId"`
	Content   string `json:"content"`
}

func (s *CommentServer) Create(c *gin.Context) {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		s.log.Error("cannot get user from context", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment data"})
		return
	}

	keyErrors, err := lib.ValidateJSON(body, lib.CommentCreateSchema())
	if err != nil || len(keyErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment data"})
		return
	}

	var request createCommentRequest
	if err := json.Unmarshal(body, &request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment data"})
		return
	}

	articleID, err := uuid.Parse(request.ArticleID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	if _, err := s.db.SelectArticleByID(request.ArticleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		s.log.Error("error selecting article by id", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	comment := &orm.Comment{
		ArticleID: articleID,
		UserID:    identity.UserID,
		UserName:  identity.Name,
		UserEmail: identity.Email,
		Content:   request.Content,
	}

	if err := s.db.InsertComment(comment); err != nil {
		s.log.Error("error inserting comment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	s.publishCreated(c, comment)
	c.JSON(http.StatusCreated, comment)
}

func (s *CommentServer) publishCreated(c *gin.Context, comment *orm.Comment) {
	if s.broker == nil {
		return
	}
	message := eventpkg.CommentCreatedMessage{
		ID:        comment.ID.String(),
		ArticleID: comment.ArticleID.String(),
		AuthorID:  comment.UserID.String(),
	}
	if err := s.broker.WriteMessage(c.Request.Context(), eventpkg.COMMENT_CREATED, message); err != nil {
		s.log.Error("error publishing comment created event", zap.Error(err))
	}
}
