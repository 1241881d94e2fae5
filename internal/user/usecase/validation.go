package usecase

import (
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/gopost/internal/pkg/goerror"
)

var dateOfBirthLayouts = []string{time.DateOnly, time.RFC3339}

// validateCreateUser reports the first problem found: username, then email
// presence, then email format. An empty string counts as absent.
func (s *Usecase) validateCreateUser(in CreateUserInput) error {
	if s.validator.Var(lo.FromPtr(in.Username), "required") != nil {
		return goerror.NewMissingField("Username is required")
	}
	if s.validator.Var(lo.FromPtr(in.Email), "required") != nil {
		return goerror.NewMissingField("Email is required")
	}
	if s.validator.Var(*in.Email, "simple_email") != nil {
		return goerror.NewInvalidField("Email format incorrect")
	}

	_, err := parseDateOfBirth(in.DateOfBirth)
	return err
}

// validateUpdateUser only looks at the fields present in the patch.
func (s *Usecase) validateUpdateUser(in UpdateUserInput) error {
	if in.Username != nil && s.validator.Var(*in.Username, "required") != nil {
		return goerror.NewInvalidField("Username cannot be empty")
	}
	if in.Email != nil && s.validator.Var(*in.Email, "simple_email") != nil {
		return goerror.NewInvalidField("Email format incorrect")
	}

	_, err := parseDateOfBirth(in.DateOfBirth)
	return err
}

// parseDateOfBirth accepts YYYY-MM-DD or RFC 3339. Nil or blank means not supplied.
func parseDateOfBirth(raw *string) (*time.Time, error) {
	value := strings.TrimSpace(lo.FromPtr(raw))
	if value == "" {
		return nil, nil
	}

	for _, layout := range dateOfBirthLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return lo.ToPtr(t.UTC()), nil
		}
	}

	return nil, goerror.NewInvalidField("Date of birth format incorrect")
}
