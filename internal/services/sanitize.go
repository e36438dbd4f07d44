package services

import "regexp"

var (
	sqlTokenPattern = regexp.MustCompile(`(?i)('|--|;|\bOR\b|\bAND\b)`)
	markupPattern   = regexp.MustCompile(`<[^>]*>|[<>]`)
)

// validUsername rejects usernames carrying SQL-ish tokens or markup.
func validUsername(s string) bool {
	return s != "" && !sqlTokenPattern.MatchString(s) && !markupPattern.MatchString(s)
}

// validFreeText rejects free text that resembles script injection.
func validFreeText(s string) bool {
	return !markupPattern.MatchString(s)
}
