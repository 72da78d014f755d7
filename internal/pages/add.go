package pages

import (
	"context"

	"creatorverse.backend/internal/domain/entities"
)

// AddPage collects a new creator
type AddPage struct {
	machine
	store CreatorStore
	form  *FormState
}

func NewAddPage(store CreatorStore) *AddPage {
	p := &AddPage{store: store, form: NewFormState(nil)}
	p.init("")
	return p
}

// Mount shows the empty form; there is nothing to load
func (p *AddPage) Mount(ctx context.Context) {
	p.mount(ctx)
	p.ready()
}

// Form returns the form state
func (p *AddPage) Form() *FormState {
	return p.form
}

// Submit saves the form as a new creator. A failure keeps the typed input
// and is reported through ActionError.
func (p *AddPage) Submit() (string, error) {
	err := p.act(ActionSave, msgSave, func(ctx context.Context) error {
		return p.form.Submit(ctx, func(ctx context.Context, fields entities.CreatorFields) error {
			_, err := p.store.AddCreator(ctx, fields)
			return err
		})
	})
	if err != nil {
		return "", err
	}
	return HomePath, nil
}
