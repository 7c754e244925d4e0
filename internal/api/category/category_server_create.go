package categoryapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inkwell-org/backend/internal/lib"
	"github.com/inkwell-org/backend/internal/middleware"
	"github.com/inkwell-org/backend/internal/orm"
)

type createCategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (s *CategoryServer) Create(c *gin.Context) {
	userID, err := middleware.GetUserUUID(c)
	if err != nil {
		s.log.Error("cannot get user from context", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and color are required"})
		return
	}

	keyErrors, err := lib.ValidateJSON(body, lib.CategoryCreateSchema())
	if err != nil || len(keyErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and color are required"})
		return
	}

	var request createCategoryRequest
	if err := json.Unmarshal(body, &request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and color are required"})
		return
	}

	category := &orm.Category{
		Name:        request.Name,
		Color:       request.Color,
		CreatedByID: &userID,
	}

	if err := s.db.InsertCategory(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category with this name already exists"})
			return
		}
		s.log.Error("error inserting category", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, category)
}
