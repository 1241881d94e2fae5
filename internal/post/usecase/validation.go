package usecase

import (
	"strconv"

	"github.com/samber/lo"
	"github.com/shandysiswandi/gopost/internal/pkg/goerror"
)

const (
	maxTitleLength       = 255
	maxDescriptionLength = 500
)

var (
	titleMaxTag       = "max=" + strconv.Itoa(maxTitleLength)
	descriptionMaxTag = "max=" + strconv.Itoa(maxDescriptionLength)
)

// validateCreatePost checks presence first, then length. An empty string counts as absent.
func (s *Usecase) validateCreatePost(in CreatePostInput) error {
	if s.validator.Var(lo.FromPtr(in.Title), "required") != nil {
		return goerror.NewMissingField("Title is required")
	}
	if s.validator.Var(lo.FromPtr(in.Description), "required") != nil {
		return goerror.NewMissingField("Description is required")
	}

	return s.validateLengths(in.Title, in.Description)
}

// validateUpdatePost only looks at the fields present in the patch.
func (s *Usecase) validateUpdatePost(in UpdatePostInput) error {
	return s.validateLengths(in.Title, in.Description)
}

func (s *Usecase) validateLengths(title, description *string) error {
	if title != nil && s.validator.Var(*title, titleMaxTag) != nil {
		return goerror.NewInvalidField("Title length limited to 255 characters")
	}
	if description != nil && s.validator.Var(*description, descriptionMaxTag) != nil {
		return goerror.NewInvalidField("Description length limited to 500 characters")
	}
	return nil
}

func (s *Usecase) validateUserID(userID *int64) error {
	if userID == nil {
		return goerror.NewMissingField("UserId is required")
	}
	if s.validator.Var(*userID, "gt=0") != nil {
		return goerror.NewInvalidField("UserId must be a positive integer")
	}
	return nil
}
