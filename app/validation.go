package app

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MinCommunityNameLen = 3
	MaxCommunityNameLen = 64
	MaxTitleLen         = 300
	MaxMediaPerPost     = 10
)

var (
	nonSlugChars    = regexp.MustCompile(`[^a-z0-9]+`)
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,32}$`)
	numericSlug     = regexp.MustCompile(`^[0-9]+$`)
)

// Slugify lowercases name and joins its alphanumeric runs with dashes:
// "Test Community" -> "test-community"
func Slugify(name string) string {
	return strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

// CommunitySlug validates a community name and returns its slug
func CommunitySlug(name string) (string, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < MinCommunityNameLen || n > MaxCommunityNameLen {
		return "", ValidationErr("community name must be between %v and %v characters", MinCommunityNameLen, MaxCommunityNameLen)
	}
	slug := Slugify(name)
	if slug == "" {
		return "", ValidationErr("community name must contain at least one letter or digit")
	}
	// communities are looked up by id or slug, so a slug must never parse as an id
	if numericSlug.MatchString(slug) {
		return "", ValidationErr("community name must contain at least one letter")
	}
	return slug, nil
}

func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return ValidationErr("username must be 3 to 32 letters, digits or underscores")
	}
	return nil
}

func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ValidationErr("title is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLen {
		return ValidationErr("title must be at most %v characters", MaxTitleLen)
	}
	return nil
}

func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return ValidationErr("content is required")
	}
	return nil
}

func ValidateMedia(media []string) error {
	if len(media) > MaxMediaPerPost {
		return ValidationErr("a post can have at most %v media items", MaxMediaPerPost)
	}
	for _, ref := range media {
		if strings.TrimSpace(ref) == "" {
			return ValidationErr("media references must not be empty")
		}
	}
	return nil
}
