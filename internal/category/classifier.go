// Package category classifies spending categories for the behavior
// detectors. The comfort-category set is configuration, not code, so the
// stress detector can be pointed at arbitrary category taxonomies.
package category

import (
	"strings"

	"github.com/spf13/viper"
)

// defaultComfortCategories are the categories treated as emotionally-driven
// spend when no override is configured.
var defaultComfortCategories = []string{
	"food",
	"dining",
	"entertainment",
	"shopping",
}

// Classifier answers whether a category is a comfort category.
type Classifier struct {
	comfort map[string]bool
}

// NewClassifier creates a classifier over an explicit comfort-category set.
// Matching is case-insensitive.
func NewClassifier(comfortCategories []string) *Classifier {
	comfort := make(map[string]bool, len(comfortCategories))
	for _, c := range comfortCategories {
		comfort[strings.ToLower(strings.TrimSpace(c))] = true
	}
	return &Classifier{comfort: comfort}
}

// NewClassifierFromViper builds a classifier from the
// `categories.comfort` config key, falling back to the built-in set.
func NewClassifierFromViper(v *viper.Viper) *Classifier {
	categories := v.GetStringSlice("categories.comfort")
	if len(categories) == 0 {
		categories = defaultComfortCategories
	}
	return NewClassifier(categories)
}

// IsComfortCategory reports whether the given category is flagged as
// emotionally-driven spend.
func (c *Classifier) IsComfortCategory(categoryID string) bool {
	return c.comfort[strings.ToLower(strings.TrimSpace(categoryID))]
}
