package testhelpers

import (
	"bytes"
	"mime"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/arzan03/EstateHub/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// File is one part of a multipart upload.
type File struct {
	Name        string
	ContentType string
	Content     string
}

// MultipartBody encodes fields and files (all under fileField) as a
// multipart/form-data body.
func MultipartBody(t *testing.T, fields map[string]string, fileField string, files ...File) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for _, f := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="`+fileField+`"; filename="`+f.Name+`"`)
		if f.ContentType != "" {
			header.Set("Content-Type", f.ContentType)
		}
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write([]byte(f.Content)); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

// FileHeaders builds parsed multipart file headers for service-level tests.
func FileHeaders(t *testing.T, files ...File) []*multipart.FileHeader {
	t.Helper()
	body, contentType := MultipartBody(t, nil, "file", files...)
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		t.Fatalf("parse content type: %v", err)
	}
	form, err := multipart.NewReader(body, params["boundary"]).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"]
}

// NewUser stores a user with a bcrypt hash of password.
func NewUser(t *testing.T, repo *UserRepo, name, email, password, role string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user, err := repo.Create(t.Context(), models.User{Name: name, Email: email, Password: string(hash), Role: role})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// NewProperty stores a valid listing owned by owner.
func NewProperty(t *testing.T, repo *PropertyRepo, owner models.User, title, listingType, propertyType string, price float64) models.Property {
	t.Helper()
	p, err := repo.Create(t.Context(), models.Property{
		Title:        title,
		Description:  "A listing used in tests.",
		Price:        price,
		ListingType:  listingType,
		PropertyType: propertyType,
		Address:      models.Address{Street: "1 Test St", City: "Dhaka", State: "DH", ZipCode: "1207"},
		Details:      models.Details{Sqft: 1000, Bedrooms: 2, Bathrooms: 1},
		Amenities:    []string{},
		Images:       []string{},
		ContactInfo:  models.ContactInfo{Name: "Agent", Phone: "555-0100", Email: "agent@example.com"},
		Owner:        owner.ID,
		Status:       models.StatusActive,
	})
	if err != nil {
		t.Fatalf("create property: %v", err)
	}
	return p
}
