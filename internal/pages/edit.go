package pages

import (
	"context"

	"creatorverse.backend/internal/domain/entities"
)

// EditPage edits or deletes an existing creator
type EditPage struct {
	machine
	store   CreatorStore
	id      string
	creator *entities.Creator
	form    *FormState
}

func NewEditPage(store CreatorStore, id string) *EditPage {
	p := &EditPage{store: store, id: id, form: NewFormState(nil)}
	p.init(msgLoadCreator)
	return p
}

// Mount loads the creator and seeds the form with it
func (p *EditPage) Mount(ctx context.Context) error {
	ctx = p.mount(ctx)
	return p.load(ctx, func(ctx context.Context) (func(), error) {
		creator, err := p.store.GetCreator(ctx, p.id)
		if err != nil {
			return nil, err
		}
		return func() {
			p.creator = creator
			p.form = NewFormState(creator)
		}, nil
	})
}

// Creator returns the creator as loaded, before any edits
func (p *EditPage) Creator() *entities.Creator {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.creator
}

// Form returns the form state
func (p *EditPage) Form() *FormState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.form
}

// ID is the id the page was opened with
func (p *EditPage) ID() string {
	return p.id
}

// Submit saves the edits and returns the creator's detail path
func (p *EditPage) Submit() (string, error) {
	form := p.Form()
	err := p.act(ActionSave, msgSave, func(ctx context.Context) error {
		return form.Submit(ctx, func(ctx context.Context, fields entities.CreatorFields) error {
			return p.store.UpdateCreator(ctx, p.id, fields)
		})
	})
	if err != nil {
		return "", err
	}
	return CreatorPath(p.id), nil
}

// Delete removes the creator and returns home
func (p *EditPage) Delete() (string, error) {
	err := p.act(ActionDelete, msgDelete, func(ctx context.Context) error {
		return p.store.DeleteCreator(ctx, p.id)
	})
	if err != nil {
		return "", err
	}
	return HomePath, nil
}
