package orm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID           uuid.UUID  `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"uniqueIndex" json:"name"`
	Color        string     `json:"color"`
	IsPredefined bool       `json:"isPredefined"`
	CreatedByID  *uuid.UUID `json:"createdById,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func (c *Category) TableName() string {
	return "category"
}

func (c *Category) BeforeCreate(transaction *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// predefinedCategories is the seed palette available on a fresh install.
var predefinedCategories = []Category{
	{Name: "Technology", Color: "#6366F1"},
	{Name: "Programming", Color: "#0EA5E9"},
	{Name: "Lifestyle", Color: "#F59E0B"},
	{Name: "Travel", Color: "#10B981"},
	{Name: "Food", Color: "#EF4444"},
	{Name: "Science", Color: "#8B5CF6"},
}

// SeedCategories inserts the predefined categories if they are missing.
// Reruns are no-ops, keyed on the unique name.
func (c *PostgresClient) SeedCategories() error {
	for _, seed := range predefinedCategories {
		category := Category{
			Name:         seed.Name,
			Color:        seed.Color,
			IsPredefined: true,
		}
		tx := c.database.Where("name = ?", seed.Name).FirstOrCreate(&category)
		if tx.Error != nil {
			return tx.Error
		}
	}
	return nil
}

func (c *PostgresClient) SelectCategories() ([]*Category, error) {
	var categories []*Category
	tx := c.database.
		Order("is_predefined DESC, name ASC").
		Find(&categories)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return categories, nil
}

func (c *PostgresClient) SelectCategoryByID(id string) (*Category, error) {
	var category Category
	tx := c.database.
		Where("id = ?", id).
		First(&category)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return &category, nil
}

func (c *PostgresClient) SelectCategoryByName(name string) (*Category, error) {
	var category Category
	tx := c.database.
		Where("name = ?", name).
		First(&category)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return &category, nil
}

func (c *PostgresClient) InsertCategory(category *Category) error {
	return c.database.Create(category).Error
}

func (c *PostgresClient) DeleteCategory(category *Category) error {
	return c.database.Delete(category).Error
}
