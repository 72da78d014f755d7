package pages

import (
	"context"
	"net/url"
	"sync"

	"creatorverse.backend/internal/domain/entities"
)

// Form field keys, as posted by the creator forms
const (
	FieldName        = "name"
	FieldURL         = "url"
	FieldDescription = "description"
	FieldImageURL    = "imageURL"
)

// FormState holds the editable fields of a creator form. It never validates
// and never talks to the store.
type FormState struct {
	mu     sync.Mutex
	values entities.CreatorFields
}

// NewFormState seeds the form from creator, or empty when creator is nil.
func NewFormState(creator *entities.Creator) *FormState {
	return &FormState{values: creator.Fields()}
}

// SetField overwrites one field. Unknown keys are ignored.
func (f *FormState) SetField(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch key {
	case FieldName:
		f.values.Name = value
	case FieldURL:
		f.values.URL = value
	case FieldDescription:
		f.values.Description = value
	case FieldImageURL:
		f.values.ImageURL = value
	}
}

// Values returns a copy of the current fields
func (f *FormState) Values() entities.CreatorFields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Submit hands a snapshot of the fields to handler.
func (f *FormState) Submit(ctx context.Context, handler func(context.Context, entities.CreatorFields) error) error {
	return handler(ctx, f.Values())
}

// Bind applies the posted form fields that are present.
func (f *FormState) Bind(form url.Values) {
	for _, key := range []string{FieldName, FieldURL, FieldDescription, FieldImageURL} {
		if vs, ok := form[key]; ok && len(vs) > 0 {
			f.SetField(key, vs[0])
		}
	}
}
