package model

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError reports that a channel-page row failed field
// validation (a malformed URL, a missing required selector result) and
// was rejected rather than persisted as an entry.
type ValidationError struct {
	Row    string
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid row %q: %s", e.Row, strings.Join(e.Fields, ", "))
}

// ValidateEntry runs struct-tag validation over an entry's channel-row
// derived fields (URL well-formedness). Title is intentionally excluded:
// an empty title is recovered from the entry page later (see
// internal/pipeline), not rejected here.
func ValidateEntry(e *Entry) error {
	if err := validate.StructExcept(e, "Title"); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return &ValidationError{Row: e.URL, Fields: []string{err.Error()}}
		}
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
		return &ValidationError{Row: e.URL, Fields: fields}
	}
	return nil
}
