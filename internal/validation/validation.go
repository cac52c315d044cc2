// Package validation checks the two mutating payload kinds before anything
// touches the database. Each input is a typed struct with one validation
// function returning every violated field, not just the first.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type CampgroundInput struct {
	Title string `json:"title" validate:"required"`
	// Pointer so an absent price is distinguishable from a free campground.
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Description string   `json:"description" validate:"required"`
	Location    string   `json:"location" validate:"required"`

	// Object keys of existing images to remove on update.
	DeleteImages []string `json:"deleteImages" validate:"-"`
}

type ReviewInput struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Body   string `json:"body" validate:"required"`
}

// Result aggregates every field violation into one message. OK is true only
// when Fields is empty.
type Result struct {
	OK      bool
	Fields  map[string]string
	Message string
}

// WithFieldError folds one more violation into the result, replacing any
// existing message for the same field, and rebuilds the joined message.
func (r Result) WithFieldError(name, msg string) Result {
	fields := map[string]string{}
	for field, fieldMsg := range r.Fields {
		fields[field] = fieldMsg
	}
	fields[name] = msg

	return buildResult(fields)
}

func ValidateCampground(input *CampgroundInput) Result {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Location = strings.TrimSpace(input.Location)

	fields := map[string]string{}

	if input.Title == "" {
		fields["title"] = "title is required"
	}
	if input.Description == "" {
		fields["description"] = "description is required"
	}
	if input.Location == "" {
		fields["location"] = "location is required"
	}

	if err := validate.Struct(input); err != nil {
		collect(err, fields, map[string]string{
			"Title":       "title",
			"Price":       "price",
			"Description": "description",
			"Location":    "location",
		})
	}

	return buildResult(fields)
}

func ValidateReview(input *ReviewInput) Result {
	input.Body = strings.TrimSpace(input.Body)

	fields := map[string]string{}

	if input.Body == "" {
		fields["body"] = "body is required"
	}

	if err := validate.Struct(input); err != nil {
		collect(err, fields, map[string]string{
			"Rating": "rating",
			"Body":   "body",
		})
	}

	return buildResult(fields)
}

func collect(err error, fields map[string]string, names map[string]string) {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		fields["input"] = "invalid input"
		return
	}

	for _, fieldErr := range validationErrors {
		name := names[fieldErr.StructField()]
		if name == "" {
			name = strings.ToLower(fieldErr.StructField())
		}
		if _, exists := fields[name]; exists {
			continue
		}
		fields[name] = message(name, fieldErr)
	}
}

func message(name string, fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", name, fieldErr.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", name, fieldErr.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", name, fieldErr.Param())
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}

func buildResult(fields map[string]string) Result {
	if len(fields) == 0 {
		return Result{OK: true}
	}

	messages := make([]string, 0, len(fields))
	for _, msg := range fields {
		messages = append(messages, msg)
	}
	sort.Strings(messages)

	return Result{
		OK:      false,
		Fields:  fields,
		Message: strings.Join(messages, ". "),
	}
}
