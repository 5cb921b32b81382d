package validation

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	titleMaxLength       = 120
	descriptionMaxLength = 5000
)

var priceRegex = regexp.MustCompile(`^\d+(\.\d{1,3})?$`)

// ValidateProductTitle ensures the listing title is present and bounded.
func ValidateProductTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if len(title) > titleMaxLength {
		return fmt.Errorf("title must be at most %d characters", titleMaxLength)
	}
	return nil
}

// ValidateProductDescription bounds the free-text description.
func ValidateProductDescription(description string) error {
	if len(description) > descriptionMaxLength {
		return fmt.Errorf("description must be at most %d characters", descriptionMaxLength)
	}
	return nil
}

// ValidatePrice accepts a non-negative decimal amount in dinars, with up to
// three decimal places (millimes).
func ValidatePrice(price string) error {
	if !priceRegex.MatchString(price) {
		return fmt.Errorf("price must be a non-negative decimal amount")
	}
	return nil
}
