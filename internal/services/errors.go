package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Shared Service Errors ---
var (
	ErrValidation           = errors.New("validation error")
	ErrInvalidID            = errors.New("invalid identifier")
	ErrMemberNotFound       = errors.New("member not found")
	ErrRequestNotFound      = errors.New("request not found")
	ErrPendingRequestExists = errors.New("a pending request already exists for this email")
	ErrRequestNotPending    = errors.New("request is no longer pending")
	ErrRequestNotApproved   = errors.New("request has not been approved")
)

// DTOs carry two tag sets: gin `binding` checks shape at the handler, and
// `validate` is applied by the services after normalisation, so padded or
// mixed-case emails are accepted.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("validate")
	return v
}

func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}

func validateEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("%w: a valid email is required", ErrValidation)
	}
	return nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}
