package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path"
	"strings"

	"github.com/arzan03/EstateHub/internal/models"
	"github.com/arzan03/EstateHub/internal/storage"
	"github.com/arzan03/EstateHub/internal/utils"
	"github.com/google/uuid"
)

const (
	PublicUploadPrefix = "/uploads/"
	defaultExtension   = "jpg"
	maxUploadWorkers   = 4
)

var contentTypes = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// UploadService stores user and listing images and serves them back.
type UploadService struct {
	store storage.ObjectStorage
	users UserRepository
}

func NewUploadService(store storage.ObjectStorage, users UserRepository) *UploadService {
	return &UploadService{store: store, users: users}
}

// UploadPhoto stores a profile or cover photo and records its public path
// on the session user. kind is checked before anything is written.
func (s *UploadService) UploadPhoto(ctx context.Context, session Session, kind string, file *multipart.FileHeader) (string, models.User, error) {
	if !models.IsPhotoKind(kind) {
		return "", models.User{}, invalid("invalid type")
	}
	if file == nil {
		return "", models.User{}, invalid("no file uploaded")
	}
	userID, err := session.userObjectID()
	if err != nil {
		return "", models.User{}, err
	}

	name, err := s.put(ctx, file)
	if err != nil {
		return "", models.User{}, err
	}
	url := PublicUploadPrefix + name

	user, err := s.users.SetPhoto(ctx, userID, kind, url)
	if err != nil {
		s.remove(name)
		return "", models.User{}, err
	}
	return url, user, nil
}

// UploadImages stores listing images concurrently and returns their public
// paths in input order. If any file fails, the ones already stored are removed.
func (s *UploadService) UploadImages(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, invalid("no files uploaded")
	}

	tasks := make([]utils.ParallelTask[string], len(files))
	for i, file := range files {
		tasks[i] = func() (string, error) { return s.put(ctx, file) }
	}
	names, errs := utils.RunParallelTasks(maxUploadWorkers, tasks)

	if err := utils.FirstError(errs); err != nil {
		for i, name := range names {
			if errs[i] == nil {
				s.remove(name)
			}
		}
		return nil, err
	}

	urls := make([]string, len(names))
	for i, name := range names {
		urls[i] = PublicUploadPrefix + name
	}
	return urls, nil
}

// Open returns a reader for a stored upload and the content type to serve
// it with. Names that could address anything outside the upload area are rejected.
func (s *UploadService) Open(ctx context.Context, filename string) (io.ReadCloser, string, error) {
	if filename == "" || strings.Contains(filename, "..") || strings.ContainsAny(filename, `/\`) {
		return nil, "", invalid("invalid filename")
	}
	rc, err := s.store.Get(ctx, filename)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("open upload: %w", err)
	}
	return rc, ContentTypeFor(filename), nil
}

// ContentTypeFor maps a file name to an image content type by extension,
// defaulting to JPEG.
func ContentTypeFor(filename string) string {
	if ct, ok := contentTypes[extension(filename)]; ok {
		return ct
	}
	return contentTypes[defaultExtension]
}

// GenerateFilename returns a random name that keeps the original extension.
func GenerateFilename(original string) string {
	ext := extension(original)
	if ext == "" {
		ext = defaultExtension
	}
	return uuid.NewString() + "." + ext
}

func (s *UploadService) put(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	name := GenerateFilename(file.Filename)
	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = ContentTypeFor(name)
	}
	if err := s.store.Put(ctx, name, src, file.Size, contentType); err != nil {
		return "", fmt.Errorf("store %s: %w", name, err)
	}
	return name, nil
}

func (s *UploadService) remove(name string) {
	if err := s.store.Delete(context.Background(), name); err != nil {
		log.Printf("Failed to remove upload %s: %v", name, err)
	}
}

// extension returns the lowercased extension when it is short and alphanumeric.
func extension(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if ext == "" || len(ext) > 10 {
		return ""
	}
	for _, r := range ext {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
