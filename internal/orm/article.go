package orm

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkwell-org/backend/internal/lib"
)

type Article struct {
	ID            uuid.UUID       `gorm:"primaryKey" json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Content       string          `json:"content"`
	CoverImageURL string          `json:"coverImageUrl,omitempty"`
	CategoryIDs   json.RawMessage `gorm:"type:jsonb" json:"categoryIds,omitempty"`
	AuthorID      uuid.UUID       `json:"authorId"`
	AuthorName    string          `json:"authorName,omitempty"`
	AuthorEmail   string          `json:"authorEmail"`
	LikeCount     int64           `json:"likes"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func (a *Article) TableName() string {
	return "article"
}

// ValidateCategoryIDs rejects anything other than a JSON array of UUID
// strings in the jsonb column.
func (a *Article) ValidateCategoryIDs() error {
	if len(a.CategoryIDs) == 0 {
		return nil
	}
	var ids []string
	if err := json.Unmarshal(a.CategoryIDs, &ids); err != nil {
		return fmt.Errorf("categoryIds is not an array of strings: %w", err)
	}
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return fmt.Errorf("categoryIds entry %q is not a uuid", id)
		}
	}
	return nil
}

func (a *Article) BeforeCreate(transaction *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return a.ValidateCategoryIDs()
}

func (a Article) GetID() uuid.UUID {
	return a.ID
}

func (a Article) GetCreatedAt() time.Time {
	return a.CreatedAt
}

func (c *PostgresClient) SelectArticleByID(id string) (*Article, error) {
	var article Article
	tx := c.database.
		Where("id = ?", id).
		First(&article)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return &article, nil
}

func (c *PostgresClient) SelectArticlesWithPagination(categoryID string, limit int, cursor string) ([]*Article, error) {
	var articles []*Article
	query := c.database.
		Order("created_at DESC, id DESC")

	if categoryID != "" {
		query = query.Where("category_ids @> ?", fmt.Sprintf("[%q]", categoryID))
	}

	paginatedQuery, err := lib.Paginate[Article](c.database, query, cursor, limit)
	if err != nil {
		return nil, err
	}

	tx := paginatedQuery.Find(&articles)
	if tx.Error != nil {
		return nil, tx.Error
	}

	return articles, nil
}

// SearchArticles matches q as a case-insensitive substring of the title or
// content, newest first. No ranking.
func (c *PostgresClient) SearchArticles(q string, limit int) ([]*Article, error) {
	var articles []*Article
	pattern := "%" + strings.ToLower(q) + "%"
	tx := c.database.
		Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&articles)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return articles, nil
}

func (c *PostgresClient) InsertArticle(article *Article) error {
	return c.database.Create(article).Error
}

func (c *PostgresClient) DeleteArticle(article *Article) error {
	return c.database.Transaction(func(transaction *gorm.DB) error {
		if err := transaction.Where("article_id = ?", article.ID).Delete(&ArticleLike{}).Error; err != nil {
			return err
		}
		commentIDs := transaction.Model(&Comment{}).Select("id").Where("article_id = ?", article.ID)
		if err := transaction.Where("comment_id IN (?)", commentIDs).Delete(&CommentLike{}).Error; err != nil {
			return err
		}
		if err := transaction.Where("article_id = ?", article.ID).Delete(&Comment{}).Error; err != nil {
			return err
		}
		return transaction.Delete(article).Error
	})
}
