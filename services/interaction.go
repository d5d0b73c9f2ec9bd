package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"kam-api/events"
	"kam-api/models"
)

type InteractionCreator interface {
	CreateInteraction(ctx context.Context, in *models.Interaction) error
}

// InteractionService records interactions and announces them on the event
// feed once committed.
type InteractionService struct {
	store     InteractionCreator
	publisher events.Publisher
	now       func() time.Time
	log       *logrus.Entry
}

func NewInteractionService(s InteractionCreator, p events.Publisher, log *logrus.Entry) *InteractionService {
	if p == nil {
		p = events.NopPublisher{}
	}
	return &InteractionService{store: s, publisher: p, now: time.Now, log: log.WithField("component", "interactions")}
}

// Create stores in. A failed publish is logged and does not fail the call;
// the interaction is already committed by then.
func (s *InteractionService) Create(ctx context.Context, in *models.Interaction) error {
	if err := s.store.CreateInteraction(ctx, in); err != nil {
		return err
	}
	entry := s.log.WithFields(logrus.Fields{
		"interaction_id": in.ID,
		"restaurant_id":  in.RestaurantID,
		"type":           in.Type,
	})
	if err := s.publisher.Publish(ctx, events.NewInteractionCreated(*in, s.now())); err != nil {
		entry.WithError(err).Warn("publish interaction event")
		return nil
	}
	entry.Debug("interaction recorded")
	return nil
}
