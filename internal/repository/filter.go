package repository

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PropertyFilter is a conjunction of optional constraints. Zero values mean
// "no constraint" on that field.
type PropertyFilter struct {
	Status       string
	PropertyType string
	ListingType  string
	MinPrice     *float64
	MaxPrice     *float64
	Title        string
	Featured     *bool
	Owner        *primitive.ObjectID
	Limit        int64
}

// BuildPropertyFilter turns f into a Mongo query document.
func BuildPropertyFilter(f PropertyFilter) bson.M {
	query := bson.M{}
	if f.Status != "" {
		query["status"] = f.Status
	}
	if f.PropertyType != "" {
		query["property_type"] = f.PropertyType
	}
	if f.ListingType != "" {
		query["listing_type"] = f.ListingType
	}
	if f.Featured != nil {
		if *f.Featured {
			query["featured"] = true
		} else {
			// Records written before the flag existed have no featured field.
			query["featured"] = bson.M{"$ne": true}
		}
	}
	if f.Owner != nil {
		query["owner"] = *f.Owner
	}

	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		query["price"] = price
	}

	if f.Title != "" {
		query["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Title), Options: "i"}
	}
	return query
}
