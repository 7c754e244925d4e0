package lib

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Paginatable is satisfied by models that can be keyset-paginated. The model
// must expose its ID and creation time.
type Paginatable interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
}

// Paginate applies cursor-based keyset pagination to a GORM query ordered by
// `created_at DESC, id DESC`. The cursor is the ID of the last item of the
// previous page; an unknown cursor yields an empty page.
func Paginate[T Paginatable](db *gorm.DB, query *gorm.DB, cursor string, limit int) (*gorm.DB, error) {
	if cursor == "" {
		return query.Limit(limit), nil
	}

	var cursorModel T
	err := db.Model(&cursorModel).Where("id = ?", cursor).First(&cursorModel).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return query.Where("1 = 0"), nil
		}
		return nil, err
	}

	paginatedQuery := query.Where(
		"(created_at < ?) OR (created_at = ? AND id < ?)",
		cursorModel.GetCreatedAt(),
		cursorModel.GetCreatedAt(),
		cursorModel.GetID(),
	).Limit(limit)

	return paginatedQuery, nil
}
