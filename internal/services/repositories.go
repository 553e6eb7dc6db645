package services

import (
	"context"

	"github.com/arzan03/EstateHub/internal/models"
	"github.com/arzan03/EstateHub/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, name, phone string) (models.User, error)
	SetPhoto(ctx context.Context, id primitive.ObjectID, kind, url string) (models.User, error)
	SetRole(ctx context.Context, id primitive.ObjectID, role string) (models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// PropertyRepository defines persistence operations for property listings.
type PropertyRepository interface {
	Create(ctx context.Context, property models.Property) (models.Property, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Property, error)
	FindListing(ctx context.Context, id primitive.ObjectID) (models.Listing, error)
	List(ctx context.Context, filter repository.PropertyFilter) ([]models.Listing, error)
	ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Property, error)
	All(ctx context.Context) ([]models.Property, error)
	Replace(ctx context.Context, property models.Property) (models.Property, error)
	SetFeatured(ctx context.Context, id primitive.ObjectID, featured bool) (models.Property, error)
	SetPropertyType(ctx context.Context, id primitive.ObjectID, propertyType string) (models.Property, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
