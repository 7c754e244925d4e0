package orm

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkwell-org/backend/internal/like"
)

// ArticleLike is the like-edge for articles. The composite unique index is
// the serialization point for concurrent toggles on one (user, article) pair.
type ArticleLike struct {
	ID        uuid.UUID `gorm:"primaryKey"`
	ArticleID uuid.UUID `gorm:"uniqueIndex:idx_article_like_edge"`
	UserID    uuid.UUID `gorm:"uniqueIndex:idx_article_like_edge"`
	CreatedAt time.Time
}

func (l *ArticleLike) TableName() string {
	return "article_like"
}

func (l *ArticleLike) BeforeCreate(transaction *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// CommentLike is the like-edge for comments.
type CommentLike struct {
	ID        uuid.UUID `gorm:"primaryKey"`
	CommentID uuid.UUID `gorm:"uniqueIndex:idx_comment_like_edge"`
	UserID    uuid.UUID `gorm:"uniqueIndex:idx_comment_like_edge"`
	CreatedAt time.Time
}

func (l *CommentLike) TableName() string {
	return "comment_like"
}

func (l *CommentLike) BeforeCreate(transaction *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// likeTables maps a target kind onto its content model, edge model and edge
// foreign-key column.
func likeTables(kind like.Kind) (target interface{}, edge interface{}, column string, err error) {
	switch kind {
	case like.KindArticle:
		return &Article{}, &ArticleLike{}, "article_id", nil
	case like.KindComment:
		return &Comment{}, &CommentLike{}, "comment_id", nil
	default:
		return nil, nil, "", fmt.Errorf("unknown like target kind %q", kind)
	}
}

// SelectLikeEdge reports whether userID currently likes targetID. Returns
// gorm.ErrRecordNotFound when no edge exists.
func (c *PostgresClient) SelectLikeEdge(kind like.Kind, targetID, userID uuid.UUID) error {
	_, edge, column, err := likeTables(kind)
	if err != nil {
		return err
	}
	tx := c.database.
		Where(column+" = ? AND user_id = ?", targetID, userID).
		First(edge)
	return tx.Error
}

func (c *PostgresClient) InsertLikeEdge(kind like.Kind, targetID, userID uuid.UUID) error {
	switch kind {
	case like.KindArticle:
		return c.database.Create(&ArticleLike{ArticleID: targetID, UserID: userID}).Error
	case like.KindComment:
		return c.database.Create(&CommentLike{CommentID: targetID, UserID: userID}).Error
	default:
		return fmt.Errorf("unknown like target kind %q", kind)
	}
}

// DeleteLikeEdge removes the edge for the pair. Returns
// gorm.ErrRecordNotFound when no edge was present, which the engine treats as
// a lost race with a concurrent toggle.
func (c *PostgresClient) DeleteLikeEdge(kind like.Kind, targetID, userID uuid.UUID) error {
	_, edge, column, err := likeTables(kind)
	if err != nil {
		return err
	}
	tx := c.database.
		Where(column+" = ? AND user_id = ?", targetID, userID).
		Delete(edge)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AdjustLikeCount applies delta to the denormalized counter in a single
// statement, floored at zero, and returns the new value. Returns
// gorm.ErrRecordNotFound when the target row does not exist.
func (c *PostgresClient) AdjustLikeCount(kind like.Kind, targetID uuid.UUID, delta int) (int64, error) {
	target, _, _, err := likeTables(kind)
	if err != nil {
		return 0, err
	}

	tx := c.database.
		Model(target).
		Where("id = ?", targetID).
		UpdateColumn("like_count", gorm.Expr("GREATEST(like_count + ?, 0)", delta))
	if tx.Error != nil {
		return 0, tx.Error
	}
	if tx.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	var count int64
	tx = c.database.
		Model(target).
		Select("like_count").
		Where("id = ?", targetID).
		Scan(&count)
	if tx.Error != nil {
		return 0, tx.Error
	}

	return count, nil
}

func (c *PostgresClient) CountLikeEdges(kind like.Kind, targetID uuid.UUID) (int64, error) {
	_, edge, column, err := likeTables(kind)
	if err != nil {
		return 0, err
	}
	var count int64
	tx := c.database.
		Model(edge).
		Where(column+" = ?", targetID).
		Count(&count)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return count, nil
}

// SelectLikeCount reads the stored denormalized counter for a target.
func (c *PostgresClient) SelectLikeCount(kind like.Kind, targetID uuid.UUID) (int64, error) {
	target, _, _, err := likeTables(kind)
	if err != nil {
		return 0, err
	}
	var count int64
	tx := c.database.
		Model(target).
		Select("like_count").
		Where("id = ?", targetID).
		Scan(&count)
	if tx.Error != nil {
		return 0, tx.Error
	}
	if tx.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return count, nil
}

// ReconcileLikeCount re-derives the counter from the edge set in one
// statement and returns the reconciled value. The worker calls this after
// every toggle event; the counter is a cached projection of the edges.
func (c *PostgresClient) ReconcileLikeCount(kind like.Kind, targetID uuid.UUID) (int64, error) {
	target, edge, column, err := likeTables(kind)
	if err != nil {
		return 0, err
	}

	subquery := c.database.
		Model(edge).
		Select("count(*)").
		Where(column+" = ?", targetID)

	tx := c.database.
		Model(target).
		Where("id = ?", targetID).
		UpdateColumn("like_count", gorm.Expr("(?)", subquery))
	if tx.Error != nil {
		return 0, tx.Error
	}
	if tx.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	return c.SelectLikeCount(kind, targetID)
}
