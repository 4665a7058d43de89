package contract

import (
	"context"

	"github.com/vinixspb/vnxChooseApple-bot/internal/entity"
)

type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Lead, error)
	Count(ctx context.Context) (int64, error)
}
