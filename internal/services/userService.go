package services

import (
	"context"
	"strings"

	"github.com/arzan03/EstateHub/internal/models"
)

type ProfileUpdate struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// UserService covers profile reads/edits and admin user management.
type UserService struct {
	users UserRepository
}

func NewUserService(users UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Profile(ctx context.Context, session Session) (models.User, error) {
	id, err := session.userObjectID()
	if err != nil {
		return models.User{}, err
	}
	return s.users.FindByID(ctx, id)
}

// UpdateProfile edits name and phone only. Omitted fields keep their value.
func (s *UserService) UpdateProfile(ctx context.Context, session Session, update ProfileUpdate) (models.User, error) {
	id, err := session.userObjectID()
	if err != nil {
		return models.User{}, err
	}
	current, err := s.users.FindByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	name, phone := current.Name, current.Phone
	if update.Name != nil {
		name = strings.TrimSpace(*update.Name)
		if name == "" {
			return models.User{}, invalid("name must not be empty")
		}
	}
	if update.Phone != nil {
		phone = strings.TrimSpace(*update.Phone)
	}
	return s.users.UpdateProfile(ctx, id, name, phone)
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	objID, err := parseID(id, "user")
	if err != nil {
		return models.User{}, err
	}
	return s.users.FindByID(ctx, objID)
}

// Delete removes a user account on behalf of an admin. Admins cannot remove
// themselves.
func (s *UserService) Delete(ctx context.Context, session Session, id string) error {
	objID, err := parseID(id, "user")
	if err != nil {
		return err
	}
	if objID.Hex() == strings.TrimSpace(session.UserID) {
		return invalid("admins cannot delete their own account")
	}
	return s.users.Delete(ctx, objID)
}

// Promote grants the admin role to the user with email.
func (s *UserService) Promote(ctx context.Context, email string) (models.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return models.User{}, err
	}
	return s.users.SetRole(ctx, user.ID, models.RoleAdmin)
}
