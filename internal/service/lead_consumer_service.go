package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/vinixspb/vnxChooseApple-bot/internal/dto"
	"github.com/vinixspb/vnxChooseApple-bot/internal/entity"
	"github.com/vinixspb/vnxChooseApple-bot/internal/pkg/logger"
	"github.com/vinixspb/vnxChooseApple-bot/internal/pkg/mailer"
	"github.com/vinixspb/vnxChooseApple-bot/internal/repository/contract"
	"github.com/vinixspb/vnxChooseApple-bot/internal/websocket"
	"github.com/vinixspb/vnxChooseApple-bot/pkg/events"
	pktNats "github.com/vinixspb/vnxChooseApple-bot/pkg/nats"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the lead topic: every completed selection is
// persisted, mailed to the manager, published as a NATS event and pushed
// to the operator websocket feed. Each delivery leg fails independently;
// one broken sink must not stop the others.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	leadRepo       contract.LeadRepository
	emailService   mailer.IEmailService
	managerEmail   string
	eventPublisher *pktNats.Publisher
	hub            *websocket.Hub
	logger         logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	leadRepo contract.LeadRepository,
	emailService mailer.IEmailService,
	managerEmail string,
	eventPublisher *pktNats.Publisher,
	hub *websocket.Hub,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		leadRepo:       leadRepo,
		emailService:   emailService,
		managerEmail:   managerEmail,
		eventPublisher: eventPublisher,
		hub:            hub,
		logger:         log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.LeadMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("LeadConsumer", "Failed to unmarshal lead message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	lead := &entity.Lead{
		Id:           uuid.New(),
		ChatUserId:   payload.ChatUserId,
		Username:     payload.Username,
		FullName:     payload.FullName,
		Source:       payload.Source,
		Selection:    toJSONMap(payload.Selection),
		Price:        payload.Price,
		Availability: payload.Availability,
		CreatedAt:    time.Now(),
	}

	if err := cs.leadRepo.Create(ctx, lead); err != nil {
		cs.logger.Error("LeadConsumer", "Failed to persist lead", map[string]interface{}{
			"lead_id": lead.Id,
			"error":   err.Error(),
		})
		msg.Nack() // Nack for retriable errors
		return
	}

	if cs.managerEmail != "" && cs.emailService != nil {
		if err := cs.emailService.SendLeadNotification(cs.managerEmail, lead); err != nil {
			cs.logger.Error("LeadConsumer", "Failed to mail manager", map[string]interface{}{
				"lead_id": lead.Id,
				"error":   err.Error(),
			})
		}
	}

	if cs.eventPublisher != nil {
		event := events.NewLeadCreated(lead.Id.String(), lead.ChatUserId, lead.Source, payload.Selection, lead.Price)
		if err := cs.eventPublisher.Publish(ctx, event); err != nil {
			cs.logger.Error("LeadConsumer", "Failed to publish NATS event", map[string]interface{}{
				"lead_id": lead.Id,
				"error":   err.Error(),
			})
		}
	}

	if cs.hub != nil {
		cs.hub.Broadcast(lead)
	}

	cs.logger.Info("LeadConsumer", "Lead processed", map[string]interface{}{
		"lead_id": lead.Id,
		"source":  lead.Source,
	})
	msg.Ack()
}

func toJSONMap(m map[string]string) datatypes.JSONMap {
	out := datatypes.JSONMap{}
	for k, v := range m {
		out[k] = v
	}
	return out
}
