package validations

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/creatorlens/backend/domains/media"
	"github.com/creatorlens/backend/pkg/apperror"
)

func ValidateGenerate(ctx context.Context, request media.GenerateRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Prompt, validation.Required, validation.Length(3, 500)),
	)

	if err != nil {
		return apperror.ValidationError(err.Error())
	}

	return nil
}
