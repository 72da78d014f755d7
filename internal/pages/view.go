package pages

import (
	"context"

	"creatorverse.backend/internal/domain/entities"
)

// ViewPage shows one creator and lets the user delete it
type ViewPage struct {
	machine
	store   CreatorStore
	id      string
	creator *entities.Creator
}

func NewViewPage(store CreatorStore, id string) *ViewPage {
	p := &ViewPage{store: store, id: id}
	p.init(msgLoadCreator)
	return p
}

// Mount loads the creator
func (p *ViewPage) Mount(ctx context.Context) error {
	ctx = p.mount(ctx)
	return p.load(ctx, func(ctx context.Context) (func(), error) {
		creator, err := p.store.GetCreator(ctx, p.id)
		if err != nil {
			return nil, err
		}
		return func() { p.creator = creator }, nil
	})
}

// Creator returns the loaded creator
func (p *ViewPage) Creator() *entities.Creator {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.creator
}

// ID is the id the page was opened with
func (p *ViewPage) ID() string {
	return p.id
}

// Delete removes the creator and returns where to go next
func (p *ViewPage) Delete() (string, error) {
	err := p.act(ActionDelete, msgDelete, func(ctx context.Context) error {
		return p.store.DeleteCreator(ctx, p.id)
	})
	if err != nil {
		return "", err
	}
	return HomePath, nil
}
