package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/arzan03/EstateHub/internal/models"
)

// TypeFix records a property whose type was rewritten.
type TypeFix struct {
	Property models.Property
	OldType  string
}

// AllProperties lists every stored listing, newest first.
func (s *PropertyService) AllProperties(ctx context.Context) ([]models.Property, error) {
	return s.properties.All(ctx)
}

// FixPropertyTypes rewrites every property whose type is missing or outside
// the known set to fallback. With dryRun nothing is written.
func (s *PropertyService) FixPropertyTypes(ctx context.Context, fallback string, dryRun bool) ([]TypeFix, error) {
	fallback = strings.ToLower(strings.TrimSpace(fallback))
	if !models.IsPropertyType(fallback) {
		return nil, invalid("invalid property type %q", fallback)
	}

	all, err := s.properties.All(ctx)
	if err != nil {
		return nil, err
	}

	var fixes []TypeFix
	for _, p := range all {
		if models.IsPropertyType(p.PropertyType) {
			continue
		}
		fix := TypeFix{Property: p, OldType: p.PropertyType}
		if !dryRun {
			updated, err := s.properties.SetPropertyType(ctx, p.ID, fallback)
			if err != nil {
				return fixes, fmt.Errorf("fix property %s: %w", p.ID.Hex(), err)
			}
			fix.Property = updated
		} else {
			fix.Property.PropertyType = fallback
		}
		fixes = append(fixes, fix)
	}
	return fixes, nil
}

// SetPropertyType forces the type of a single property.
func (s *PropertyService) SetPropertyType(ctx context.Context, id, propertyType string) (models.Property, error) {
	objID, err := parseID(id, "property")
	if err != nil {
		return models.Property{}, err
	}
	propertyType = strings.ToLower(strings.TrimSpace(propertyType))
	if !models.IsPropertyType(propertyType) {
		return models.Property{}, invalid("invalid property type %q", propertyType)
	}
	return s.properties.SetPropertyType(ctx, objID, propertyType)
}

// SeedSamples inserts the demo listings owned by the user with ownerEmail.
func (s *PropertyService) SeedSamples(ctx context.Context, ownerEmail string) ([]models.Property, error) {
	owner, err := s.users.FindByEmail(ctx, normalizeEmail(ownerEmail))
	if err != nil {
		return nil, fmt.Errorf("find owner %q: %w", ownerEmail, err)
	}

	created := make([]models.Property, 0, len(sampleListings))
	for _, sample := range sampleListings {
		property, err := s.Create(ctx, Session{UserID: owner.ID.Hex(), Role: owner.Role}, sample)
		if err != nil {
			return created, fmt.Errorf("seed %q: %w", sample.Title, err)
		}
		created = append(created, property)
	}
	return created, nil
}

func intPtr(v int) *int { return &v }

var sampleListings = []PropertyInput{
	{
		Title:        "Modern Apartment in Downtown",
		Description:  "A beautiful modern apartment in the heart of downtown with stunning city views.",
		Price:        350000,
		ListingType:  models.ListingSell,
		PropertyType: "apartment",
		Address:      models.Address{Street: "123 Main St", City: "New York", State: "NY", ZipCode: "10001"},
		Details:      models.Details{Sqft: 1200, Bedrooms: 2, Bathrooms: 2, YearBuilt: intPtr(2015)},
		Amenities:    []string{"Parking", "Gym", "Pool", "Security"},
		Images:       []string{"/placeholder.svg"},
		ContactInfo:  models.ContactInfo{Name: "John Doe", Phone: "123-456-7890", Email: "john@example.com"},
	},
	{
		Title:        "Luxury Villa with Pool",
		Description:  "A stunning luxury villa with a private pool and beautiful garden.",
		Price:        850000,
		ListingType:  models.ListingSell,
		PropertyType: "villa",
		Address:      models.Address{Street: "456 Oak Ave", City: "Los Angeles", State: "CA", ZipCode: "90001"},
		Details:      models.Details{Sqft: 3500, Bedrooms: 4, Bathrooms: 3, YearBuilt: intPtr(2018)},
		Amenities:    []string{"Pool", "Garden", "Garage", "Security System"},
		Images:       []string{"/placeholder.svg"},
		ContactInfo:  models.ContactInfo{Name: "Jane Smith", Phone: "987-654-3210", Email: "jane@example.com"},
	},
	{
		Title:        "Cozy House in Suburbs",
		Description:  "A cozy family house in a quiet suburban neighborhood.",
		Price:        450000,
		ListingType:  models.ListingSell,
		PropertyType: "house",
		Address:      models.Address{Street: "789 Pine St", City: "Chicago", State: "IL", ZipCode: "60601"},
		Details:      models.Details{Sqft: 2200, Bedrooms: 3, Bathrooms: 2, YearBuilt: intPtr(2010)},
		Amenities:    []string{"Garage", "Garden", "Basement"},
		Images:       []string{"/placeholder.svg"},
		ContactInfo:  models.ContactInfo{Name: "Bob Johnson", Phone: "555-123-4567", Email: "bob@example.com"},
	},
	{
		Title:        "Furnished Studio Near Campus",
		Description:  "Bright furnished studio, walking distance to the university.",
		Price:        1800,
		ListingType:  models.ListingRent,
		PropertyType: "apartment",
		Address:      models.Address{Street: "12 College Rd", City: "Boston", State: "MA", ZipCode: "02115"},
		Details:      models.Details{Sqft: 450, Bedrooms: 1, Bathrooms: 1},
		Amenities:    []string{"Furnished", "Laundry"},
		Images:       []string{"/placeholder.svg"},
		ContactInfo:  models.ContactInfo{Name: "Alice Brown", Phone: "555-987-6543", Email: "alice@example.com"},
	},
	{
		Title:        "Corner Shop on High Street",
		Description:  "Ground floor retail space with large display windows.",
		Price:        4200,
		ListingType:  models.ListingRent,
		PropertyType: "shop",
		Address:      models.Address{Street: "1 High St", City: "Seattle", State: "WA", ZipCode: "98101"},
		Details:      models.Details{Sqft: 800, Bedrooms: 0, Bathrooms: 1},
		Amenities:    []string{"Street Parking"},
		Images:       []string{"/placeholder.svg"},
		ContactInfo:  models.ContactInfo{Name: "Carlos Diaz", Phone: "555-222-3333", Email: "carlos@example.com"},
	},
}
