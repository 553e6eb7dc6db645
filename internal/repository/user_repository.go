package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arzan03/EstateHub/internal/db"
	"github.com/arzan03/EstateHub/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var withoutPassword = bson.M{"password": 0}

// UserRepository handles persistence for users.
type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(database *mongo.Database) *UserRepository {
	return &UserRepository{collection: database.Collection(db.UsersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	now := now()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// FindByID returns the user without its password hash.
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(withoutPassword)).Decode(&user)
	return user, notFound(err)
}

// FindByEmail returns the full record, password hash included, for credential checks.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	return user, notFound(err)
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	opts := options.Find().
		SetProjection(withoutPassword).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, name, phone string) (models.User, error) {
	return r.set(ctx, id, bson.M{"name": name, "phone": phone})
}

// SetPhoto records url in the profile or cover photo slot.
func (r *UserRepository) SetPhoto(ctx context.Context, id primitive.ObjectID, kind, url string) (models.User, error) {
	field := "profile_photo"
	if kind == models.PhotoCover {
		field = "cover_photo"
	}
	return r.set(ctx, id, bson.M{field: url})
}

func (r *UserRepository) SetRole(ctx context.Context, id primitive.ObjectID, role string) (models.User, error) {
	return r.set(ctx, id, bson.M{"role": role})
}

func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) set(ctx context.Context, id primitive.ObjectID, fields bson.M) (models.User, error) {
	fields["updated_at"] = now()
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutPassword)

	var user models.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&user)
	return user, notFound(err)
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

// Mongo stores milliseconds; truncating keeps round-tripped values equal.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
