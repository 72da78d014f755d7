package pages

import (
	"context"

	"creatorverse.backend/internal/domain/entities"
)

// CreatorStore is the data access the page controllers need
type CreatorStore interface {
	ListCreators(ctx context.Context) ([]*entities.Creator, error)
	GetCreator(ctx context.Context, id string) (*entities.Creator, error)
	AddCreator(ctx context.Context, fields entities.CreatorFields) (*entities.Creator, error)
	UpdateCreator(ctx context.Context, id string, fields entities.CreatorFields) error
	DeleteCreator(ctx context.Context, id string) error
}

const (
	msgLoadCreators = "Failed to load creators"
	msgLoadCreator  = "Failed to load creator"
	msgSave         = "Failed to save changes"
	msgDelete       = "Failed to delete"
)

// HomePath is where the list lives and where deletes land
const HomePath = "/"

// CreatorPath returns the detail path of a creator
func CreatorPath(id string) string {
	return "/creators/" + id
}

// ListPage shows every saved creator
type ListPage struct {
	machine
	store    CreatorStore
	creators []*entities.Creator
}

func NewListPage(store CreatorStore) *ListPage {
	p := &ListPage{store: store}
	p.init(msgLoadCreators)
	return p
}

// Mount loads the list
func (p *ListPage) Mount(ctx context.Context) error {
	ctx = p.mount(ctx)
	return p.load(ctx, func(ctx context.Context) (func(), error) {
		items, err := p.store.ListCreators(ctx)
		if err != nil {
			return nil, err
		}
		return func() { p.creators = items }, nil
	})
}

// Creators returns the loaded creators, newest first
func (p *ListPage) Creators() []*entities.Creator {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.creators
}

// Count is the number of loaded creators
func (p *ListPage) Count() int {
	return len(p.Creators())
}

// Empty reports a loaded list with nothing in it
func (p *ListPage) Empty() bool {
	return p.State() == StateReady && p.Count() == 0
}
