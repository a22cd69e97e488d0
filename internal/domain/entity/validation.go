package entity

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	maxNewsIDLength  = 128
	maxRawTextLength = 2000
)

// ValidateNewsID checks a news cluster identifier supplied by a client.
func ValidateNewsID(newsID string) error {
	if strings.TrimSpace(newsID) == "" {
		return &ValidationError{Field: "newsId", Message: "newsId is required"}
	}
	if len(newsID) > maxNewsIDLength {
		return &ValidationError{
			Field:   "newsId",
			Message: fmt.Sprintf("newsId must not exceed %d characters", maxNewsIDLength),
		}
	}
	return nil
}

// ValidateRawText checks a free-text briefing request.
func ValidateRawText(text string) error {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Field: "rawText", Message: "rawText is required"}
	}
	if utf8.RuneCountInString(text) > maxRawTextLength {
		return &ValidationError{
			Field:   "rawText",
			Message: fmt.Sprintf("rawText must not exceed %d characters", maxRawTextLength),
		}
	}
	return nil
}

// ValidateBaseURL checks the portal backend base URL.
// Unlike member input, private hosts are allowed since the backend usually
// lives on the internal network.
func ValidateBaseURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "base_url", Message: "base URL is required"}
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ValidationError{Field: "base_url", Message: "base URL must use http or https scheme"}
	}
	if u.Host == "" {
		return &ValidationError{Field: "base_url", Message: "base URL must have a valid host"}
	}
	return nil
}
