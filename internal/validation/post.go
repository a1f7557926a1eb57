package validation

import (
	"fmt"
	"strings"

	"campushub/internal/models"
)

// ValidatePostFields checks client-supplied post content. When requireCore is set, title and
// description must be present; otherwise they are only checked if sent.
func ValidatePostFields(f models.PostFields, requireCore bool) error {
	if requireCore && (f.Title == nil || f.Description == nil) {
		return fmt.Errorf("Title and description are required")
	}
	if f.Title != nil && strings.TrimSpace(*f.Title) == "" {
		return fmt.Errorf("Title and description are required")
	}
	if f.Description != nil && strings.TrimSpace(*f.Description) == "" {
		return fmt.Errorf("Title and description are required")
	}
	if f.Difficulty != nil && !f.Difficulty.Valid() {
		return fmt.Errorf("difficulty must be one of Easy, Medium, Hard, Medium-Hard")
	}
	if f.NumberOfRounds != nil && *f.NumberOfRounds < 0 {
		return fmt.Errorf("numberOfRounds must not be negative")
	}
	if f.NumberOfProblems != nil && *f.NumberOfProblems < 0 {
		return fmt.Errorf("numberOfProblems must not be negative")
	}
	return nil
}
