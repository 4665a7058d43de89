package service

import (
	"context"

	"github.com/vinixspb/vnxChooseApple-bot/internal/dto"
	"github.com/vinixspb/vnxChooseApple-bot/internal/repository/contract"
)

type ILeadService interface {
	GetLeads(ctx context.Context, limit, offset int) ([]*dto.LeadResponse, int64, error)
}

type leadService struct {
	leadRepo contract.LeadRepository
}

func NewLeadService(leadRepo contract.LeadRepository) ILeadService {
	return &leadService{leadRepo: leadRepo}
}

func (s *leadService) GetLeads(ctx context.Context, limit, offset int) ([]*dto.LeadResponse, int64, error) {
	leads, err := s.leadRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.leadRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	out := make([]*dto.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		selection := make(map[string]string, len(lead.Selection))
		for k, v := range lead.Selection {
			if str, ok := v.(string); ok {
				selection[k] = str
			}
		}
		out = append(out, &dto.LeadResponse{
			Id:           lead.Id,
			ChatUserId:   lead.ChatUserId,
			Username:     lead.Username,
			FullName:     lead.FullName,
			Source:       lead.Source,
			Selection:    selection,
			Price:        lead.Price,
			Availability: lead.Availability,
			CreatedAt:    lead.CreatedAt,
		})
	}
	return out, total, nil
}
