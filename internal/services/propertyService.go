package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arzan03/EstateHub/internal/models"
)

// PropertyInput is the client-editable part of a listing at creation time.
type PropertyInput struct {
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Price        float64            `json:"price"`
	ListingType  string             `json:"listing_type"`
	PropertyType string             `json:"property_type"`
	Address      models.Address     `json:"address"`
	Details      models.Details     `json:"details"`
	Amenities    []string           `json:"amenities"`
	Images       []string           `json:"images"`
	ContactInfo  models.ContactInfo `json:"contact_info"`
	Status       string             `json:"status"`
}

// PropertyPatch carries a partial update; nil fields are left unchanged.
type PropertyPatch struct {
	Title        *string             `json:"title"`
	Description  *string             `json:"description"`
	Price        *float64            `json:"price"`
	ListingType  *string             `json:"listing_type"`
	PropertyType *string             `json:"property_type"`
	Address      *models.Address     `json:"address"`
	Details      *models.Details     `json:"details"`
	Amenities    *[]string           `json:"amenities"`
	Images       *[]string           `json:"images"`
	ContactInfo  *models.ContactInfo `json:"contact_info"`
	Status       *string             `json:"status"`
}

// PropertyService implements browsing and owner-only mutation of listings.
type PropertyService struct {
	properties PropertyRepository
	users      UserRepository
}

func NewPropertyService(properties PropertyRepository, users UserRepository) *PropertyService {
	return &PropertyService{properties: properties, users: users}
}

func (s *PropertyService) List(ctx context.Context, q ListingQuery) ([]models.Listing, error) {
	filter, err := q.Filter()
	if err != nil {
		return nil, err
	}
	return s.properties.List(ctx, filter)
}

func (s *PropertyService) Get(ctx context.Context, id string) (models.Listing, error) {
	objID, err := parseID(id, "property")
	if err != nil {
		return models.Listing{}, err
	}
	return s.properties.FindListing(ctx, objID)
}

func (s *PropertyService) ListMine(ctx context.Context, session Session) ([]models.Property, error) {
	owner, err := session.userObjectID()
	if err != nil {
		return nil, err
	}
	return s.properties.ListByOwner(ctx, owner)
}

// Create stores a new listing owned by the session user.
func (s *PropertyService) Create(ctx context.Context, session Session, in PropertyInput) (models.Property, error) {
	owner, err := session.userObjectID()
	if err != nil {
		return models.Property{}, err
	}
	if _, err := s.users.FindByID(ctx, owner); err != nil {
		return models.Property{}, err
	}

	property := models.Property{
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		Price:        in.Price,
		ListingType:  strings.ToLower(strings.TrimSpace(in.ListingType)),
		PropertyType: strings.ToLower(strings.TrimSpace(in.PropertyType)),
		Address:      in.Address,
		Details:      in.Details,
		Amenities:    in.Amenities,
		Images:       in.Images,
		ContactInfo:  in.ContactInfo,
		Owner:        owner,
		Status:       strings.ToLower(strings.TrimSpace(in.Status)),
	}
	if property.Status == "" {
		property.Status = models.StatusActive
	}
	if err := models.Validate(property); err != nil {
		return models.Property{}, &ValidationError{Msg: err.Error()}
	}
	return s.properties.Create(ctx, property)
}

// Update applies patch to a listing the session user owns.
func (s *PropertyService) Update(ctx context.Context, session Session, id string, patch PropertyPatch) (models.Property, error) {
	property, err := s.authorize(ctx, session, id)
	if err != nil {
		return models.Property{}, err
	}

	patch.applyTo(&property)
	if err := models.Validate(property); err != nil {
		return models.Property{}, &ValidationError{Msg: err.Error()}
	}
	return s.properties.Replace(ctx, property)
}

// Delete removes a listing the session user owns.
func (s *PropertyService) Delete(ctx context.Context, session Session, id string) error {
	property, err := s.authorize(ctx, session, id)
	if err != nil {
		return err
	}
	return s.properties.Delete(ctx, property.ID)
}

// SetFeatured toggles the homepage flag. Callers restrict this to admins.
func (s *PropertyService) SetFeatured(ctx context.Context, id string, featured bool) (models.Property, error) {
	objID, err := parseID(id, "property")
	if err != nil {
		return models.Property{}, err
	}
	return s.properties.SetFeatured(ctx, objID, featured)
}

// authorize loads the listing and checks ownership. A missing listing is
// ErrNotFound; someone else's listing is ErrForbidden.
func (s *PropertyService) authorize(ctx context.Context, session Session, id string) (models.Property, error) {
	if _, err := session.userObjectID(); err != nil {
		return models.Property{}, err
	}
	objID, err := parseID(id, "property")
	if err != nil {
		return models.Property{}, err
	}

	property, err := s.properties.FindByID(ctx, objID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.Property{}, ErrNotFound
		}
		return models.Property{}, fmt.Errorf("load property: %w", err)
	}
	if !property.OwnedBy(session.UserID) {
		return models.Property{}, ErrForbidden
	}
	return property, nil
}

func (p PropertyPatch) applyTo(property *models.Property) {
	if p.Title != nil {
		property.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		property.Description = strings.TrimSpace(*p.Description)
	}
	if p.Price != nil {
		property.Price = *p.Price
	}
	if p.ListingType != nil {
		property.ListingType = strings.ToLower(strings.TrimSpace(*p.ListingType))
	}
	if p.PropertyType != nil {
		property.PropertyType = strings.ToLower(strings.TrimSpace(*p.PropertyType))
	}
	if p.Address != nil {
		property.Address = *p.Address
	}
	if p.Details != nil {
		property.Details = *p.Details
	}
	if p.Amenities != nil {
		property.Amenities = *p.Amenities
	}
	if p.Images != nil {
		property.Images = *p.Images
	}
	if p.ContactInfo != nil {
		property.ContactInfo = *p.ContactInfo
	}
	if p.Status != nil {
		property.Status = strings.ToLower(strings.TrimSpace(*p.Status))
	}
}
