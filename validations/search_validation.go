package validations

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/creatorlens/backend/pkg/apperror"
)

type SearchRequest struct {
	Query string
}

func ValidateSearch(ctx context.Context, request SearchRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Query, validation.Required, validation.Length(1, 200)),
	)

	if err != nil {
		return apperror.ValidationError(err.Error())
	}

	return nil
}
