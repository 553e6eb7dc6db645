package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/arzan03/EstateHub/internal/models"
	"github.com/arzan03/EstateHub/internal/repository"
)

// FeaturedTab is the homepage tab value for status. It lifts the listing
// type constraint and is never stored on a record.
const FeaturedTab = "featured"

// ListingQuery holds the raw browse parameters as they arrive on the URL.
type ListingQuery struct {
	Status       string `query:"status"`
	Type         string `query:"type"`
	PropertyType string `query:"propertyType"`
	ListingType  string `query:"listingType"`
	MinPrice     string `query:"minPrice"`
	MaxPrice     string `query:"maxPrice"`
	Q            string `query:"q"`
	Title        string `query:"title"`
	Featured     string `query:"featured"`
	Limit        string `query:"limit"`
}

// Filter validates the parameters and converts them into a repository filter.
//
// status accepts three families of values: a listing type (sell, rent) as
// sent by the homepage tabs, the featured tab, or a stored record status.
func (q ListingQuery) Filter() (repository.PropertyFilter, error) {
	var f repository.PropertyFilter

	status := strings.ToLower(strings.TrimSpace(q.Status))
	switch {
	case status == "" || status == FeaturedTab:
	case models.IsListingType(status):
		f.ListingType = status
	case models.IsPropertyStatus(status):
		f.Status = status
	default:
		return f, invalid("invalid status %q", q.Status)
	}

	if lt := strings.ToLower(strings.TrimSpace(q.ListingType)); lt != "" {
		if !models.IsListingType(lt) {
			return f, invalid("invalid listingType %q", q.ListingType)
		}
		if f.ListingType != "" && f.ListingType != lt {
			return f, invalid("status %q conflicts with listingType %q", q.Status, q.ListingType)
		}
		f.ListingType = lt
	}

	propertyType := firstNonEmpty(q.PropertyType, q.Type)
	if propertyType != "" {
		propertyType = strings.ToLower(propertyType)
		if !models.IsPropertyType(propertyType) {
			return f, invalid("invalid property type %q", propertyType)
		}
		f.PropertyType = propertyType
	}

	var err error
	if f.MinPrice, err = parsePrice("minPrice", q.MinPrice); err != nil {
		return f, err
	}
	if f.MaxPrice, err = parsePrice("maxPrice", q.MaxPrice); err != nil {
		return f, err
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return f, invalid("minPrice must not exceed maxPrice")
	}

	f.Title = firstNonEmpty(q.Q, q.Title)

	if raw := strings.TrimSpace(q.Featured); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return f, invalid("invalid featured %q", q.Featured)
		}
		f.Featured = &featured
	}

	if raw := strings.TrimSpace(q.Limit); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || limit < 0 {
			return f, invalid("invalid limit %q", q.Limit)
		}
		f.Limit = limit
	}

	return f, nil
}

func parsePrice(name, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, invalid("invalid %s %q", name, raw)
	}
	return &v, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
