package lib

import (
	"context"
	"encoding/json"

	"github.com/qri-io/jsonschema"
)

// ValidateJSON validates a JSON raw message against a given JSON schema.
// It returns a list of validation errors if the JSON is invalid.
func ValidateJSON(content json.RawMessage, schemaString string) ([]jsonschema.KeyError, error) {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(schemaString), rs); err != nil {
		return nil, err
	}

	return rs.ValidateBytes(context.Background(), content)
}

// ArticleCreateSchema constrains the body of POST /api/article.
func ArticleCreateSchema() string {
	return `{
		"type": "object",
		"properties": {
			"title": {"type": "string", "minLength": 1, "maxLength": 200},
			"description": {"type": "string", "minLength": 1, "maxLength": 500},
			"content": {"type": "string", "minLength": 1},
			"coverImageUrl": {"type": "string", "format": "uri"},
			"categoryIds": {
				"type": "array",
				"items": {"type": "string", "format": "uuid"},
				"maxItems": 10
			}
		},
		"required": ["title", "description", "content"]
	}`
}

// CommentCreateSchema constrains the body of POST /api/comment.
func CommentCreateSchema() string {
	return `{
		"type": "object",
		"properties": {
			"articleId": {"type": "string", "format": "uuid"},
			"content": {"type": "string", "minLength": 1, "maxLength": 1000}
		},
		"required": ["articleId", "content"]
	}`
}

// CategoryCreateSchema constrains the body of POST /api/category. Colors are
// hex codes, matching the seeded palette.
func CategoryCreateSchema() string {
	return `{
		"type": "object",
		"properties": {
			"name": {"type": "string", "minLength": 1, "maxLength": 50},
			"color": {"type": "string", "pattern": "^#[0-9A-Fa-f]{6}$"}
		},
		"required": ["name", "color"]
	}`
}
