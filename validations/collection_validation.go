package validations

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	domainCollection "github.com/creatorlens/backend/domains/collection"
	"github.com/creatorlens/backend/pkg/apperror"
)

func ValidateSaveCollection(ctx context.Context, request domainCollection.CreateRequest) error {
	rules := []*validation.FieldRules{
		validation.Field(&request.Title, validation.Required, validation.Length(1, 300)),
		validation.Field(&request.ImageUrl, validation.Required),
	}
	// data URLs from generated images skip the URL shape check
	if len(request.ImageUrl) < 5 || request.ImageUrl[:5] != "data:" {
		rules = append(rules, validation.Field(&request.ImageUrl, is.URL))
	}

	err := validation.ValidateStructWithContext(ctx, &request, rules...)
	if err != nil {
		return apperror.ValidationError(err.Error())
	}

	return nil
}
