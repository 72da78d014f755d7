package entities

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Creator represents a saved content creator
type Creator struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	URL         string      `json:"url"`
	Description string      `json:"description"`
	ImageURL    null.String `json:"imageURL"`
	CreatedAt   time.Time   `json:"created_at"`
}

// CreatorFields is the editable part of a creator, as typed into a form
type CreatorFields struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	ImageURL    string `json:"imageURL"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (f CreatorFields) Trimmed() CreatorFields {
	return CreatorFields{
		Name:        strings.TrimSpace(f.Name),
		URL:         strings.TrimSpace(f.URL),
		Description: strings.TrimSpace(f.Description),
		ImageURL:    strings.TrimSpace(f.ImageURL),
	}
}

// Validate checks the required fields after trimming. The returned error is a
// validation.Errors keyed by the json field names.
func (f CreatorFields) Validate() error {
	t := f.Trimmed()
	return validation.ValidateStruct(&t,
		validation.Field(&t.Name, validation.Required.Error("Name is required")),
		validation.Field(&t.URL, validation.Required.Error("URL is required")),
		validation.Field(&t.Description, validation.Required.Error("Description is required")),
	)
}

// NullableImageURL converts the image field to the stored form: blank becomes NULL.
func (f CreatorFields) NullableImageURL() null.String {
	image := strings.TrimSpace(f.ImageURL)
	if image == "" {
		return null.String{}
	}
	return null.StringFrom(image)
}

// Fields returns the editable snapshot of the creator
func (c *Creator) Fields() CreatorFields {
	if c == nil {
		return CreatorFields{}
	}
	return CreatorFields{
		Name:        c.Name,
		URL:         c.URL,
		Description: c.Description,
		ImageURL:    c.ImageURL.String,
	}
}

// ImageKind tells whether a creator has its own picture
type ImageKind string

const (
	ImageKindHasImage ImageKind = "has_image"
	ImageKindNoImage  ImageKind = "no_image"
)

const fallbackAvatarBase = "https://avatar.vercel.sh/"

// Image is resolved once per creator so every page shows the same picture.
type Image struct {
	Kind     ImageKind
	URL      string
	Initials string
}

// HasImage reports whether the creator supplied an image URL.
func (i Image) HasImage() bool {
	return i.Kind == ImageKindHasImage
}

// AvatarURL returns the image to use at the given pixel size.
func (i Image) AvatarURL(size int) string {
	if i.HasImage() {
		return i.URL
	}
	return i.URL + fmt.Sprintf("?size=%d", size)
}

// Image resolves the HasImage / NoImage choice for the creator
func (c *Creator) Image() Image {
	initials := Initials(c.Name)
	if c.ImageURL.Valid && strings.TrimSpace(c.ImageURL.String) != "" {
		return Image{Kind: ImageKindHasImage, URL: strings.TrimSpace(c.ImageURL.String), Initials: initials}
	}
	return Image{
		Kind:     ImageKindNoImage,
		URL:      fallbackAvatarBase + escapeComponent(c.Name),
		Initials: initials,
	}
}

// componentUnescaper restores the marks a URI component keeps literal.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escapeComponent escapes s for use as one URI component, the way browsers
// encode a path or query part.
func escapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// Initials returns up to two upper-cased first letters of the name's words
func Initials(name string) string {
	var b strings.Builder
	for i, word := range strings.Fields(name) {
		if i == 2 {
			break
		}
		b.WriteString(strings.ToUpper(string([]rune(word)[0])))
	}
	return b.String()
}
