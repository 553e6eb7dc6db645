package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arzan03/EstateHub/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound           = repository.ErrNotFound
	ErrEmailTaken         = repository.ErrDuplicateEmail
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("not authorized")
)

// ValidationError marks bad client input; its message is safe to show.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Session is the authenticated identity attached to a request.
type Session struct {
	UserID string
	Role   string
}

func (s Session) userObjectID() (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(s.UserID))
	if err != nil {
		return primitive.NilObjectID, ErrUnauthenticated
	}
	return id, nil
}

func parseID(raw, what string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID, invalid("invalid %s id", what)
	}
	return id, nil
}
