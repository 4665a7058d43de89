package memory

import (
	"context"
	"sync"

	"github.com/vinixspb/vnxChooseApple-bot/internal/entity"
	"github.com/vinixspb/vnxChooseApple-bot/internal/repository/contract"
)

// LeadRepository is the fallback store used when no database is
// configured. Leads still reach the operator through mail/NATS/websocket;
// this just keeps the REST listing working.
type LeadRepository struct {
	mu    sync.RWMutex
	leads []*entity.Lead
}

func NewLeadRepository() contract.LeadRepository {
	return &LeadRepository{}
}

func (r *LeadRepository) Create(_ context.Context, lead *entity.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leads = append(r.leads, lead)
	return nil
}

func (r *LeadRepository) FindAll(_ context.Context, limit, offset int) ([]*entity.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Newest first, matching the database implementation.
	out := []*entity.Lead{}
	for i := len(r.leads) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.leads[i])
	}
	return out, nil
}

func (r *LeadRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.leads)), nil
}
