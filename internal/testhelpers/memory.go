// Package testhelpers provides in-memory stand-ins for the Mongo repositories
// and object storage, shared by service and handler tests.
package testhelpers

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/arzan03/EstateHub/internal/models"
	"github.com/arzan03/EstateHub/internal/repository"
	"github.com/arzan03/EstateHub/internal/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepo is an in-memory user store. Calls counts every method invocation.
type UserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
	Calls int
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: map[primitive.ObjectID]models.User{}}
}

func (r *UserRepo) Create(ctx context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return models.User{}, repository.ErrDuplicateEmail
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	return user, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	user, ok := r.users[id]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	user.Password = ""
	return user, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	users := make([]models.User, 0, len(r.users))
	for _, user := range r.users {
		user.Password = ""
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

func (r *UserRepo) UpdateProfile(ctx context.Context, id primitive.ObjectID, name, phone string) (models.User, error) {
	return r.update(id, func(u *models.User) { u.Name, u.Phone = name, phone })
}

func (r *UserRepo) SetPhoto(ctx context.Context, id primitive.ObjectID, kind, url string) (models.User, error) {
	return r.update(id, func(u *models.User) {
		if kind == models.PhotoCover {
			u.CoverPhoto = url
		} else {
			u.ProfilePhoto = url
		}
	})
}

func (r *UserRepo) SetRole(ctx context.Context, id primitive.ObjectID, role string) (models.User, error) {
	return r.update(id, func(u *models.User) { u.Role = role })
}

func (r *UserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// Get reads a stored user without counting a call.
func (r *UserRepo) Get(id primitive.ObjectID) (models.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	return user, ok
}

func (r *UserRepo) update(id primitive.ObjectID, mutate func(*models.User)) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	user, ok := r.users[id]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	mutate(&user)
	user.UpdatedAt = time.Now()
	r.users[id] = user
	user.Password = ""
	return user, nil
}

// PropertyRepo is an in-memory property store that evaluates
// repository.PropertyFilter the way the Mongo query does.
type PropertyRepo struct {
	mu         sync.Mutex
	properties map[primitive.ObjectID]models.Property
	users      *UserRepo
	clock      time.Time
}

// NewPropertyRepo joins owners from users when listing; users may be nil.
func NewPropertyRepo(users *UserRepo) *PropertyRepo {
	return &PropertyRepo{
		properties: map[primitive.ObjectID]models.Property{},
		users:      users,
		clock:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *PropertyRepo) Create(ctx context.Context, property models.Property) (models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if property.ID.IsZero() {
		property.ID = primitive.NewObjectID()
	}
	// Strictly increasing timestamps keep newest-first ordering deterministic.
	r.clock = r.clock.Add(time.Second)
	property.CreatedAt = r.clock
	property.UpdatedAt = r.clock
	r.properties[property.ID] = property
	return property, nil
}

func (r *PropertyRepo) FindByID(ctx context.Context, id primitive.ObjectID) (models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	property, ok := r.properties[id]
	if !ok {
		return models.Property{}, repository.ErrNotFound
	}
	return property, nil
}

func (r *PropertyRepo) FindListing(ctx context.Context, id primitive.ObjectID) (models.Listing, error) {
	property, err := r.FindByID(ctx, id)
	if err != nil {
		return models.Listing{}, err
	}
	return r.listing(property), nil
}

func (r *PropertyRepo) List(ctx context.Context, filter repository.PropertyFilter) ([]models.Listing, error) {
	r.mu.Lock()
	matched := []models.Property{}
	for _, p := range r.properties {
		if Matches(filter, p) {
			matched = append(matched, p)
		}
	}
	r.mu.Unlock()

	sortNewestFirst(matched)
	if filter.Limit > 0 && int64(len(matched)) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	listings := make([]models.Listing, len(matched))
	for i, p := range matched {
		listings[i] = r.listing(p)
	}
	return listings, nil
}

func (r *PropertyRepo) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Property, error) {
	all, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	owned := []models.Property{}
	for _, p := range all {
		if p.Owner == owner {
			owned = append(owned, p)
		}
	}
	return owned, nil
}

func (r *PropertyRepo) All(ctx context.Context) ([]models.Property, error) {
	r.mu.Lock()
	all := make([]models.Property, 0, len(r.properties))
	for _, p := range r.properties {
		all = append(all, p)
	}
	r.mu.Unlock()
	sortNewestFirst(all)
	return all, nil
}

func (r *PropertyRepo) Replace(ctx context.Context, property models.Property) (models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.properties[property.ID]; !ok {
		return models.Property{}, repository.ErrNotFound
	}
	property.UpdatedAt = time.Now()
	r.properties[property.ID] = property
	return property, nil
}

func (r *PropertyRepo) SetFeatured(ctx context.Context, id primitive.ObjectID, featured bool) (models.Property, error) {
	return r.update(id, func(p *models.Property) { p.Featured = featured })
}

func (r *PropertyRepo) SetPropertyType(ctx context.Context, id primitive.ObjectID, propertyType string) (models.Property, error) {
	return r.update(id, func(p *models.Property) { p.PropertyType = propertyType })
}

func (r *PropertyRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.properties[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.properties, id)
	return nil
}

// Count reports how many properties are stored.
func (r *PropertyRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.properties)
}

func (r *PropertyRepo) update(id primitive.ObjectID, mutate func(*models.Property)) (models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	property, ok := r.properties[id]
	if !ok {
		return models.Property{}, repository.ErrNotFound
	}
	mutate(&property)
	r.properties[id] = property
	return property, nil
}

func (r *PropertyRepo) listing(p models.Property) models.Listing {
	listing := models.Listing{Property: p}
	if r.users == nil {
		return listing
	}
	if owner, ok := r.users.Get(p.Owner); ok {
		listing.OwnerInfo = &models.OwnerSummary{ID: owner.ID, Name: owner.Name, Email: owner.Email}
	}
	return listing
}

// Matches evaluates f against p with the same semantics as the Mongo filter.
func Matches(f repository.PropertyFilter, p models.Property) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.PropertyType != "" && p.PropertyType != f.PropertyType {
		return false
	}
	if f.ListingType != "" && p.ListingType != f.ListingType {
		return false
	}
	if f.Featured != nil && p.Featured != *f.Featured {
		return false
	}
	if f.Owner != nil && p.Owner != *f.Owner {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.Title != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(f.Title)) {
		return false
	}
	return true
}

func sortNewestFirst(ps []models.Property) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].CreatedAt.After(ps[j].CreatedAt) })
}

// Storage is an in-memory storage.ObjectStorage. Puts counts successful writes.
type Storage struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	Puts    int
	// FailOn makes Put fail when the written content equals it.
	FailOn string
}

func NewStorage() *Storage {
	return &Storage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *Storage) EnsureBucket(ctx context.Context) error { return nil }

func (s *Storage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if s.FailOn != "" && string(data) == s.FailOn {
		return io.ErrUnexpectedEOF
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	s.types[key] = contentType
	s.Puts++
	return nil
}

func (s *Storage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	delete(s.types, key)
	return nil
}

// Keys lists the stored object names.
func (s *Storage) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Seed stores data under key directly.
func (s *Storage) Seed(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
}
