package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"creatorverse.backend/internal/domain/entities"
	domainrepos "creatorverse.backend/internal/domain/repositories"
	"creatorverse.backend/pkg/metrics"
)

// InstrumentedCreatorRepository records a counter and latency sample per store call.
type InstrumentedCreatorRepository struct {
	next    domainrepos.CreatorRepository
	metrics *metrics.Metrics
}

func NewInstrumentedCreatorRepository(next domainrepos.CreatorRepository, m *metrics.Metrics) *InstrumentedCreatorRepository {
	return &InstrumentedCreatorRepository{next: next, metrics: m}
}

func (r *InstrumentedCreatorRepository) List(ctx context.Context) (items []*entities.Creator, err error) {
	defer r.observe("list", time.Now(), &err)
	return r.next.List(ctx)
}

func (r *InstrumentedCreatorRepository) GetByID(ctx context.Context, id uuid.UUID) (creator *entities.Creator, err error) {
	defer r.observe("get", time.Now(), &err)
	return r.next.GetByID(ctx, id)
}

func (r *InstrumentedCreatorRepository) Create(ctx context.Context, creator *entities.Creator) (err error) {
	defer r.observe("create", time.Now(), &err)
	return r.next.Create(ctx, creator)
}

func (r *InstrumentedCreatorRepository) Update(ctx context.Context, creator *entities.Creator) (err error) {
	defer r.observe("update", time.Now(), &err)
	return r.next.Update(ctx, creator)
}

func (r *InstrumentedCreatorRepository) Delete(ctx context.Context, id uuid.UUID) (err error) {
	defer r.observe("delete", time.Now(), &err)
	return r.next.Delete(ctx, id)
}

func (r *InstrumentedCreatorRepository) Ping(ctx context.Context) (err error) {
	defer r.observe("ping", time.Now(), &err)
	return r.next.Ping(ctx)
}

func (r *InstrumentedCreatorRepository) observe(operation string, started time.Time, errp *error) {
	if r.metrics == nil {
		return
	}
	r.metrics.ObserveStoreCall(operation, started, *errp)
}
