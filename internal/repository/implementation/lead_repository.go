package implementation

import (
	"context"

	"gorm.io/gorm"

	"github.com/vinixspb/vnxChooseApple-bot/internal/entity"
	"github.com/vinixspb/vnxChooseApple-bot/internal/repository/contract"
)

type leadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) contract.LeadRepository {
	return &leadRepository{db: db}
}

func (r *leadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	return r.db.WithContext(ctx).Create(lead).Error
}

func (r *leadRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Lead, error) {
	var leads []*entity.Lead
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&leads).Error
	if err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *leadRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Lead{}).Count(&count).Error
	return count, err
}
