package lib

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJSONArticleSchema(t *testing.T) {
	valid := json.RawMessage(`{
		"title": "A title",
		"description": "A description",
		"content": "Some markdown",
		"categoryIds": ["c1f8e4d9-8b9a-4b7c-8c6f-4e2b0e1d7a3e"]
	}`)
	keyErrors, err := ValidateJSON(valid, ArticleCreateSchema())
	require.NoError(t, err)
	assert.Empty(t, keyErrors)

	missingTitle := json.RawMessage(`{"description": "d", "content": "c"}`)
	keyErrors, err = ValidateJSON(missingTitle, ArticleCreateSchema())
	require.NoError(t, err)
	assert.NotEmpty(t, keyErrors)
}

func TestValidateJSONCommentSchema(t *testing.T) {
	valid := json.RawMessage(`{"articleId": "c1f8e4d9-8b9a-4b7c-8c6f-4e2b0e1d7a3e", "content": "nice"}`)
	keyErrors, err := ValidateJSON(valid, CommentCreateSchema())
	require.NoError(t, err)
	assert.Empty(t, keyErrors)

	empty := json.RawMessage(`{"articleId": "c1f8e4d9-8b9a-4b7c-8c6f-4e2b0e1d7a3e", "content": ""}`)
	keyErrors, err = ValidateJSON(empty, CommentCreateSchema())
	require.NoError(t, err)
	assert.NotEmpty(t, keyErrors)
}

func TestValidateJSONCategorySchema(t *testing.T) {
	valid := json.RawMessage(`{"name": "go", "color": "#336699"}`)
	keyErrors, err := ValidateJSON(valid, CategoryCreateSchema())
	require.NoError(t, err)
	assert.Empty(t, keyErrors)

	badColor := json.RawMessage(`{"name": "go", "color": "blue"}`)
	keyErrors, err = ValidateJSON(badColor, CategoryCreateSchema())
	require.NoError(t, err)
	assert.NotEmpty(t, keyErrors)
}
