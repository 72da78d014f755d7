package handlers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"creatorverse.backend/internal/domain/entities"
	domainerrors "creatorverse.backend/internal/domain/errors"
	"creatorverse.backend/pkg/utils"
)

type creatorStoreStub struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entities.Creator
	clock time.Time

	listErr   error
	getErr    error
	addErr    error
	updateErr error
	deleteErr error
}

func newCreatorStoreStub() *creatorStoreStub {
	return &creatorStoreStub{
		items: map[uuid.UUID]*entities.Creator{},
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *creatorStoreStub) seed(name string) *entities.Creator {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = s.clock.Add(time.Minute)
	c := &entities.Creator{
		ID:          uuid.New(),
		Name:        name,
		URL:         "https://youtube.com/@" + name,
		Description: name + " videos",
		CreatedAt:   s.clock,
	}
	s.items[c.ID] = c
	return c
}

func (s *creatorStoreStub) ListCreators(context.Context) ([]*entities.Creator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]*entities.Creator, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *creatorStoreStub) GetCreator(_ context.Context, raw string) (*entities.Creator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	id, ok := utils.ParseID(raw)
	if !ok {
		return nil, domainerrors.NotFound("Creator not found")
	}
	item, ok := s.items[id]
	if !ok {
		return nil, domainerrors.NotFound("Creator not found")
	}
	copied := *item
	return &copied, nil
}

func (s *creatorStoreStub) AddCreator(_ context.Context, fields entities.CreatorFields) (*entities.Creator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.addErr != nil {
		return nil, s.addErr
	}
	fields = fields.Trimmed()
	s.clock = s.clock.Add(time.Minute)
	c := &entities.Creator{
		ID:          uuid.New(),
		Name:        fields.Name,
		URL:         fields.URL,
		Description: fields.Description,
		ImageURL:    fields.NullableImageURL(),
		CreatedAt:   s.clock,
	}
	s.items[c.ID] = c
	return c, nil
}

func (s *creatorStoreStub) UpdateCreator(_ context.Context, raw string, fields entities.CreatorFields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	id, ok := utils.ParseID(raw)
	if !ok {
		return nil
	}
	item, ok := s.items[id]
	if !ok {
		return nil
	}
	fields = fields.Trimmed()
	item.Name = fields.Name
	item.URL = fields.URL
	item.Description = fields.Description
	item.ImageURL = fields.NullableImageURL()
	return nil
}

func (s *creatorStoreStub) DeleteCreator(_ context.Context, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if id, ok := utils.ParseID(raw); ok {
		delete(s.items, id)
	}
	return nil
}

func (s *creatorStoreStub) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
