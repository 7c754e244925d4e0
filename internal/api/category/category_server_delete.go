package categoryapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inkwell-org/backend/internal/middleware"
)

func (s *CategoryServer) Delete(c *gin.Context) {
	userID, err := middleware.GetUserUUID(c)
	if err != nil {
		s.log.Error("cannot get user from context", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
		return
	}

	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category ID is required"})
		return
	}
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	category, err := s.db.SelectCategoryByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		s.log.Error("error selecting category by id", zap.String("category_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	if category.IsPredefined {
		c.JSON(http.StatusForbidden, gin.H{"error": "Predefined categories cannot be deleted"})
		return
	}
	if category.CreatedByID == nil || *category.CreatedByID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete categories you created"})
		return
	}

	if err := s.db.DeleteCategory(category); err != nil {
		s.log.Error("error deleting category", zap.String("category_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
