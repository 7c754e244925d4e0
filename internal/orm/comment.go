package orm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkwell-org/backend/internal/lib"
)

type Comment struct {
	ID        uuid.UUID `gorm:"primaryKey" json:"id"`
	ArticleID uuid.UUID `gorm:"index" json:"articleId"`
	UserID    uuid.UUID `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	UserEmail string    `json:"userEmail"`
	Content   string    `json:"content"`
	LikeCount int64     `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Comment) TableName() string {
	return "comment"
}

func (c *Comment) BeforeCreate(transaction *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c Comment) GetID() uuid.UUID {
	return c.ID
}

func (c Comment) GetCreatedAt() time.Time {
	return c.CreatedAt
}

func (c *PostgresClient) SelectCommentByID(id string) (*Comment, error) {
	var comment Comment
	tx := c.database.
		Where("id = ?", id).
		First(&comment)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return &comment, nil
}

func (c *PostgresClient) SelectCommentsWithPagination(articleID string, limit int, cursor string) ([]*Comment, error) {
	var comments []*Comment
	query := c.database.
		Where("article_id = ?", articleID).
		Order("created_at DESC, id DESC")

	paginatedQuery, err := lib.Paginate[Comment](c.database, query, cursor, limit)
	if err != nil {
		return nil, err
	}

	tx := paginatedQuery.Find(&comments)
	if tx.Error != nil {
		return nil, tx.Error
	}

	return comments, nil
}

func (c *PostgresClient) InsertComment(comment *Comment) error {
	return c.database.Create(comment).Error
}

func (c *PostgresClient) DeleteComment(comment *Comment) error {
	return c.database.Transaction(func(transaction *gorm.DB) error {
		if err := transaction.Where("comment_id = ?", comment.ID).Delete(&CommentLike{}).Error; err != nil {
			return err
		}
		return transaction.Delete(comment).Error
	})
}
