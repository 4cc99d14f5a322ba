package domain

import "time"

// Stage is the position of an article in the editorial pipeline.
type Stage string

const (
	StagePending   Stage = "pending"
	StageEditing   Stage = "editing"
	StageReviewing Stage = "reviewing"
	StagePublished Stage = "published"
	StageArchived  Stage = "archived"
)

// ValidStages contains all valid article stages.
var ValidStages = []Stage{StagePending, StageEditing, StageReviewing, StagePublished, StageArchived}

// IsValidStage checks if a stage is valid.
func IsValidStage(stage string) bool {
	for _, s := range ValidStages {
		if string(s) == stage {
			return true
		}
	}
	return false
}

// ValidCategories contains all article categories.
var ValidCategories = []string{"Science", "Sports", "Opinion", "Events"}

// IsValidCategory checks if a category is valid.
func IsValidCategory(category string) bool {
	for _, c := range ValidCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Article represents an article entity in the system. Views counts unique
// viewers and is kept equal to the size of the viewer set at all times.
type Article struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Body              string    `json:"body"`
	AuthorID          string    `json:"author_id"`
	Stage             Stage     `json:"stage"`
	CategorySuggested *string   `json:"category_suggested,omitempty"`
	CategoryFinal     *string   `json:"category_final,omitempty"`
	Views             int       `json:"views"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// DisplayCategory returns the final category when set, falling back to the
// suggested one.
func (a *Article) DisplayCategory() string {
	if a.CategoryFinal != nil && *a.CategoryFinal != "" {
		return *a.CategoryFinal
	}
	if a.CategorySuggested != nil {
		return *a.CategorySuggested
	}
	return ""
}
