package orm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an author provisioned from the external identity provider on the
// first authenticated request. Credentials never live here.
type User struct {
	ID        uuid.UUID `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex" json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) TableName() string {
	return "user"
}

func (u *User) BeforeCreate(transaction *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (c *PostgresClient) SelectUserByID(id string) (*User, error) {
	var user User
	tx := c.database.
		Where("id = ?", id).
		First(&user)

	if tx.Error != nil {
		return nil, tx.Error
	}

	return &user, nil
}

func (c *PostgresClient) InsertUser(user *User) error {
	return c.database.Create(user).Error
}
