package usecase

import "github.com/shandysiswandi/gopost/internal/pkg/goerror"

func (s *Usecase) validateCredentials(username, password string) error {
	if s.validator.Var(username, "required") != nil {
		return goerror.NewMissingField("Username is required")
	}
	if s.validator.Var(password, "required") != nil {
		return goerror.NewMissingField("Password is required")
	}
	return nil
}
