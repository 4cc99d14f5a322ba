package validator

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"student-lens/internal/domain"
)

var (
	validRoles      = rolesAsInterfaces()
	validCategories = categoriesAsInterfaces()
)

func rolesAsInterfaces() []interface{} {
	out := make([]interface{}, len(domain.ValidRoles))
	for i, r := range domain.ValidRoles {
		out[i] = string(r)
	}
	return out
}

func categoriesAsInterfaces() []interface{} {
	out := make([]interface{}, len(domain.ValidCategories))
	for i, c := range domain.ValidCategories {
		out[i] = c
	}
	return out
}

// Validator provides validation methods for incoming payloads.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// SignupInput is the payload for creating a user.
type SignupInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ValidateSignup validates a signup payload.
func (v *Validator) ValidateSignup(in *SignupInput) error {
	return validation.ValidateStruct(in,
		validation.Field(&in.Name,
			validation.Required.Error("name_required"),
		),
		validation.Field(&in.Email,
			validation.Required.Error("email_required"),
			is.Email.Error("invalid_email_format"),
		),
	)
}

// SubmitArticleInput is the payload for submitting a new article.
type SubmitArticleInput struct {
	Title             string  `json:"title"`
	Body              string  `json:"body"`
	CategorySuggested *string `json:"category_suggested,omitempty"`
}

// ValidateSubmission validates an article submission.
func (v *Validator) ValidateSubmission(in *SubmitArticleInput) error {
	return validation.ValidateStruct(in,
		validation.Field(&in.Title,
			validation.Required.Error("title_required"),
		),
		validation.Field(&in.Body,
			validation.Required.Error("body_required"),
		),
		validation.Field(&in.CategorySuggested,
			validation.In(validCategories...).Error("invalid_category"),
		),
	)
}

// EditArticleInput is the payload for editing an article. Nil fields are
// left unchanged.
type EditArticleInput struct {
	Title             *string `json:"title,omitempty"`
	Body              *string `json:"body,omitempty"`
	CategorySuggested *string `json:"category_suggested,omitempty"`
	CategoryFinal     *string `json:"category_final,omitempty"`
}

// ValidateEdit validates an article edit.
func (v *Validator) ValidateEdit(in *EditArticleInput) error {
	err := validation.ValidateStruct(in,
		validation.Field(&in.CategorySuggested,
			validation.In(validCategories...).Error("invalid_category"),
		),
		validation.Field(&in.CategoryFinal,
			validation.In(validCategories...).Error("invalid_category"),
		),
	)
	if err != nil {
		return err
	}

	// A present-but-empty title or body would blank the article
	if in.Title != nil && *in.Title == "" {
		return validation.Errors{
			"title": validation.NewError("title_required", "title cannot be empty"),
		}
	}
	if in.Body != nil && *in.Body == "" {
		return validation.Errors{
			"body": validation.NewError("body_required", "body cannot be empty"),
		}
	}
	return nil
}

// ApplicationInput is the payload for a writer application.
type ApplicationInput struct {
	Reason string `json:"reason"`
}

// ValidateApplication validates a writer application.
func (v *Validator) ValidateApplication(in *ApplicationInput) error {
	return validation.ValidateStruct(in,
		validation.Field(&in.Reason,
			validation.Required.Error("reason_required"),
		),
	)
}

// RoleInput is the payload for an admin role change.
type RoleInput struct {
	Role string `json:"role"`
}

// ValidateRole validates a role change payload.
func (v *Validator) ValidateRole(in *RoleInput) error {
	return validation.ValidateStruct(in,
		validation.Field(&in.Role,
			validation.Required.Error("role_required"),
			validation.In(validRoles...).Error("invalid_role"),
		),
	)
}
