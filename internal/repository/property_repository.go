package repository

import (
	"context"
	"fmt"

	"github.com/arzan03/EstateHub/internal/db"
	"github.com/arzan03/EstateHub/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

// PropertyRepository handles persistence for property listings.
type PropertyRepository struct {
	collection *mongo.Collection
}

func NewPropertyRepository(database *mongo.Database) *PropertyRepository {
	return &PropertyRepository{collection: database.Collection(db.PropertiesCollection)}
}

func (r *PropertyRepository) Create(ctx context.Context, property models.Property) (models.Property, error) {
	now := now()
	if property.ID.IsZero() {
		property.ID = primitive.NewObjectID()
	}
	property.CreatedAt = now
	property.UpdatedAt = now
	normalize(&property)

	if _, err := r.collection.InsertOne(ctx, property); err != nil {
		return models.Property{}, fmt.Errorf("insert property: %w", err)
	}
	return property, nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Property, error) {
	var property models.Property
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	return property, notFound(err)
}

// FindListing returns one property with its owner joined in.
func (r *PropertyRepository) FindListing(ctx context.Context, id primitive.ObjectID) (models.Listing, error) {
	pipeline := mongo.Pipeline{{{Key: "$match", Value: bson.M{"_id": id}}}}
	pipeline = append(pipeline, ownerLookup()...)

	listings, err := r.aggregate(ctx, pipeline)
	if err != nil {
		return models.Listing{}, err
	}
	if len(listings) == 0 {
		return models.Listing{}, ErrNotFound
	}
	return listings[0], nil
}

// List returns the properties matching filter, newest first, with owners joined in.
func (r *PropertyRepository) List(ctx context.Context, filter PropertyFilter) ([]models.Listing, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: BuildPropertyFilter(filter)}},
		{{Key: "$sort", Value: newestFirst}},
	}
	if filter.Limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: filter.Limit}})
	}
	pipeline = append(pipeline, ownerLookup()...)
	return r.aggregate(ctx, pipeline)
}

// ListByOwner returns the owner's properties, newest first, without the join.
func (r *PropertyRepository) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Property, error) {
	return r.find(ctx, bson.M{"owner": owner})
}

// All returns every stored property; used by maintenance commands.
func (r *PropertyRepository) All(ctx context.Context) ([]models.Property, error) {
	return r.find(ctx, bson.M{})
}

// Replace overwrites the stored record. There is no version check; the
// last writer wins.
func (r *PropertyRepository) Replace(ctx context.Context, property models.Property) (models.Property, error) {
	property.UpdatedAt = now()
	normalize(&property)

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": property.ID}, property)
	if err != nil {
		return models.Property{}, fmt.Errorf("replace property: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.Property{}, ErrNotFound
	}
	return property, nil
}

func (r *PropertyRepository) SetFeatured(ctx context.Context, id primitive.ObjectID, featured bool) (models.Property, error) {
	return r.set(ctx, id, bson.M{"featured": featured})
}

func (r *PropertyRepository) SetPropertyType(ctx context.Context, id primitive.ObjectID, propertyType string) (models.Property, error) {
	return r.set(ctx, id, bson.M{"property_type": propertyType})
}

func (r *PropertyRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PropertyRepository) set(ctx context.Context, id primitive.ObjectID, fields bson.M) (models.Property, error) {
	fields["updated_at"] = now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var property models.Property
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&property)
	return property, notFound(err)
}

func (r *PropertyRepository) find(ctx context.Context, filter bson.M) ([]models.Property, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("find properties: %w", err)
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("decode properties: %w", err)
	}
	return properties, nil
}

func (r *PropertyRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]models.Listing, error) {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate properties: %w", err)
	}
	defer cursor.Close(ctx)

	listings := []models.Listing{}
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("decode properties: %w", err)
	}
	return listings, nil
}

// ownerLookup joins the owner's name and email. Owners that were deleted
// leave owner_info empty rather than dropping the listing.
func ownerLookup() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: db.UsersCollection},
			{Key: "localField", Value: "owner"},
			{Key: "foreignField", Value: "_id"},
			{Key: "pipeline", Value: bson.A{bson.M{"$project": bson.M{"name": 1, "email": 1}}}},
			{Key: "as", Value: "owner_info"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$owner_info"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

// Store empty lists rather than null so clients always get arrays.
func normalize(p *models.Property) {
	if p.Amenities == nil {
		p.Amenities = []string{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
}
