package fixtures

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	ormpkg "github.com/inkwell-org/backend/internal/orm"
)

// GetTestUser returns a fresh user for use in tests. Identities are
// randomized because the test database is shared between tests and user
// emails are unique.
func GetTestUser() *ormpkg.User {
	id := uuid.New()
	return &ormpkg.User{
		ID:        id,
		Email:     fmt.Sprintf("user-%s@example.com", id),
		Name:      "Test User",
		CreatedAt: time.Now().Add(-24 * time.Hour),
	}
}

// GetTestArticle returns a standard article authored by author.
func GetTestArticle(author *ormpkg.User) *ormpkg.Article {
	return &ormpkg.Article{
		ID:          uuid.New(),
		Title:       "Test Article Title",
		Description: "This is a test article.",
		Content:     "<p>This is the content of the test article.</p>",
		AuthorID:    author.ID,
		AuthorName:  author.Name,
		AuthorEmail: author.Email,
		CreatedAt:   time.Now().Add(-12 * time.Hour),
	}
}

// GetTestComment returns a standard comment by user on articleID.
func GetTestComment(articleID uuid.UUID, user *ormpkg.User) *ormpkg.Comment {
	return &ormpkg.Comment{
		ID:        uuid.New(),
		ArticleID: articleID,
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
		Content:   "This is a test comment.",
		CreatedAt: time.Now().Add(-6 * time.Hour),
	}
}
