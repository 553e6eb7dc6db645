package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validProperty() Property {
	return Property{
		Title:        "Modern Apartment in Downtown",
		Description:  "Two bedrooms with city views.",
		Price:        350000,
		ListingType:  ListingSell,
		PropertyType: "apartment",
		Address:      Address{Street: "123 Main St", City: "New York", State: "NY", ZipCode: "10001"},
		Details:      Details{Sqft: 1200, Bedrooms: 2, Bathrooms: 2},
		ContactInfo:  ContactInfo{Name: "John Doe", Phone: "123-456-7890", Email: "john@example.com"},
		Status:       StatusActive,
	}
}

func TestValidateProperty(t *testing.T) {
	assert.NoError(t, Validate(validProperty()))

	p := validProperty()
	p.PropertyType = "castle"
	p.Address.City = ""
	err := Validate(p)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "property_type must be one of")
		assert.Contains(t, err.Error(), "address.city is required")
	}

	p = validProperty()
	p.Price = -1
	assert.ErrorContains(t, Validate(p), "price must be at least 0")

	year := 42
	p = validProperty()
	p.Details.YearBuilt = &year
	assert.ErrorContains(t, Validate(p), "details.year_built")
}

func TestOwnedBy(t *testing.T) {
	owner := primitive.NewObjectID()
	p := validProperty()

	assert.False(t, p.OwnedBy(owner.Hex()), "unowned property matches nobody")

	p.Owner = owner
	assert.True(t, p.OwnedBy(owner.Hex()))
	assert.False(t, p.OwnedBy(primitive.NewObjectID().Hex()))
}

func TestEnumHelpers(t *testing.T) {
	assert.True(t, IsPropertyType("garage"))
	assert.False(t, IsPropertyType("featured"))
	assert.True(t, IsListingType("rent"))
	assert.False(t, IsListingType("lease"))
	assert.True(t, IsPropertyStatus("sold"))
	assert.False(t, IsPropertyStatus("featured"))
}

func TestValidateUser(t *testing.T) {
	u := User{Name: "Ada", Email: "ada@example.com", Role: RoleUser}
	assert.NoError(t, Validate(u))

	u.Email = "not-an-email"
	assert.ErrorContains(t, Validate(u), "email must be a valid email address")
	assert.False(t, u.IsAdmin())
}
