package lib

import (
	"math"
	"regexp"
	"strings"
)

const defaultWordsPerMinute = 200

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripMarkup removes HTML tags and collapses whitespace so word counts are
// computed over prose only.
func StripMarkup(content string) string {
	stripped := tagPattern.ReplaceAllString(content, " ")
	return strings.Join(strings.Fields(stripped), " ")
}

// CountWords returns the number of whitespace-separated words in content
// after markup is stripped.
func CountWords(content string) int {
	cleaned := StripMarkup(content)
	if cleaned == "" {
		return 0
	}
	return len(strings.Fields(cleaned))
}

// ReadingStats describes how long an article takes to read.
type ReadingStats struct {
	WordCount          int `json:"wordCount"`
	ReadingTimeMinutes int `json:"readingTimeMinutes"`
}

// GetReadingStats computes word count and estimated reading time at a fixed
// reading speed. Non-empty content always reads for at least one minute.
func GetReadingStats(content string) ReadingStats {
	words := CountWords(content)
	if words == 0 {
		return ReadingStats{}
	}
	minutes := int(math.Round(float64(words) / float64(defaultWordsPerMinute)))
	if minutes < 1 {
		minutes = 1
	}
	return ReadingStats{WordCount: words, ReadingTimeMinutes: minutes}
}
