package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ListingSell = "sell"
	ListingRent = "rent"
)

const (
	StatusActive  = "active"
	StatusPending = "pending"
	StatusSold    = "sold"
	StatusRented  = "rented"
)

var ListingTypes = []string{ListingSell, ListingRent}

var PropertyTypes = []string{"apartment", "villa", "house", "office", "building", "townhouse", "shop", "garage"}

var PropertyStatuses = []string{StatusActive, StatusPending, StatusSold, StatusRented}

type Address struct {
	Street  string `bson:"street" json:"street" validate:"required"`
	City    string `bson:"city" json:"city" validate:"required"`
	State   string `bson:"state" json:"state" validate:"required"`
	ZipCode string `bson:"zip_code" json:"zip_code" validate:"required"`
}

type Details struct {
	Sqft      float64 `bson:"sqft" json:"sqft" validate:"gte=0"`
	Bedrooms  int     `bson:"bedrooms" json:"bedrooms" validate:"gte=0"`
	Bathrooms int     `bson:"bathrooms" json:"bathrooms" validate:"gte=0"`
	YearBuilt *int    `bson:"year_built,omitempty" json:"year_built,omitempty" validate:"omitempty,gte=1000,lte=3000"`
}

type ContactInfo struct {
	Name  string `bson:"name" json:"name" validate:"required"`
	Phone string `bson:"phone" json:"phone" validate:"required"`
	Email string `bson:"email" json:"email" validate:"required,email"`
}

type Property struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title" validate:"required"`
	Description  string             `bson:"description" json:"description" validate:"required"`
	Price        float64            `bson:"price" json:"price" validate:"gte=0"`
	ListingType  string             `bson:"listing_type" json:"listing_type" validate:"required,oneof=sell rent"`
	PropertyType string             `bson:"property_type" json:"property_type" validate:"required,oneof=apartment villa house office building townhouse shop garage"`
	Address      Address            `bson:"address" json:"address"`
	Details      Details            `bson:"details" json:"details"`
	Amenities    []string           `bson:"amenities" json:"amenities"`
	Images       []string           `bson:"images" json:"images"`
	ContactInfo  ContactInfo        `bson:"contact_info" json:"contact_info"`
	Owner        primitive.ObjectID `bson:"owner" json:"owner"`
	Status       string             `bson:"status" json:"status" validate:"required,oneof=active pending sold rented"`
	Featured     bool               `bson:"featured" json:"featured"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// OwnedBy compares owners by their hex identity.
func (p Property) OwnedBy(userID string) bool {
	return !p.Owner.IsZero() && p.Owner.Hex() == userID
}

// Listing is a Property with its owner's name and email joined in.
type Listing struct {
	Property  `bson:",inline"`
	OwnerInfo *OwnerSummary `bson:"owner_info,omitempty" json:"owner_info,omitempty"`
}

func IsPropertyType(v string) bool { return contains(PropertyTypes, v) }

func IsListingType(v string) bool { return contains(ListingTypes, v) }

func IsPropertyStatus(v string) bool { return contains(PropertyStatuses, v) }

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
