package orchestrator

import (
	"strings"
	"unicode"
)

const (
	defaultCity   = "Mumbai"
	defaultSymbol = "AAPL"
	defaultTopic  = "technology"
)

var (
	cityStopWords   = map[string]bool{"what": true, "how": true, "get": true, "check": true, "show": true}
	symbolStopWords = map[string]bool{
		"GET": true, "STOCK": true, "PRICE": true, "THE": true, "WHAT": true,
		"SHOW": true, "CHECK": true, "OF": true, "IS": true, "MY": true, "FOR": true,
	}
)

const paramTrimSet = "?.,!"

// extractCity pulls a city name out of a weather query: first the word
// after a preposition, then any capitalized word that is not a question word.
func extractCity(query string) string {
	words := strings.Fields(query)
	for i, word := range words {
		switch strings.ToLower(word) {
		case "in", "for", "at":
			if i+1 < len(words) {
				return strings.Trim(words[i+1], paramTrimSet)
			}
		}
	}
	for _, word := range words {
		if word == "" {
			continue
		}
		first := []rune(word)[0]
		if unicode.IsUpper(first) && !cityStopWords[strings.ToLower(word)] {
			return strings.Trim(word, paramTrimSet)
		}
	}
	return defaultCity
}

// extractSymbol finds a short all-letter token usable as a ticker symbol.
func extractSymbol(query string) string {
	for _, word := range strings.Fields(strings.ToUpper(query)) {
		clean := strings.Trim(word, paramTrimSet)
		if len(clean) >= 1 && len(clean) <= 5 && isAlpha(clean) && !symbolStopWords[clean] {
			return clean
		}
	}
	return defaultSymbol
}

// extractTopic takes the word following "about", "on" or "for".
func extractTopic(query string) string {
	words := strings.Fields(strings.ToLower(query))
	for i, word := range words {
		switch word {
		case "about", "on", "for":
			if i+1 < len(words) {
				return strings.Trim(words[i+1], paramTrimSet)
			}
		}
	}
	return defaultTopic
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return len(s) > 0
}
