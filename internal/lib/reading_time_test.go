package lib

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripMarkup(t *testing.T) {
	assert.Equal(t, "", StripMarkup(""))
	assert.Equal(t, "hello world", StripMarkup("<p>hello   <b>world</b></p>"))
	assert.Equal(t, "plain text", StripMarkup("plain text"))
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords(""))
	assert.Equal(t, 0, CountWords("<br/>"))
	assert.Equal(t, 3, CountWords("one two three"))
	assert.Equal(t, 2, CountWords("<h1>a</h1><p>b</p>"))
}

func TestGetReadingStats(t *testing.T) {
	assert.Equal(t, ReadingStats{}, GetReadingStats(""))

	short := GetReadingStats("just a few words here")
	assert.Equal(t, 5, short.WordCount)
	assert.Equal(t, 1, short.ReadingTimeMinutes)

	long := GetReadingStats(strings.Repeat("word ", 600))
	assert.Equal(t, 600, long.WordCount)
	assert.Equal(t, 3, long.ReadingTimeMinutes)
}
