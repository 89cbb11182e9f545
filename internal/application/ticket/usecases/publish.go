package usecases

import (
	"github.com/supportdesk/supportdesk/internal/domain/shared/events"
	"github.com/supportdesk/supportdesk/internal/shared/logger"
)

// publishEvent hands an event to the dispatcher after the mutation is stored.
// Delivery is best effort; a failure is logged and never undoes the change.
func publishEvent(publisher events.EventPublisher, log logger.Interface, event events.DomainEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(event); err != nil {
		log.Warnw("failed to publish domain event",
			"event_type", event.GetEventType(),
			"aggregate_id", event.GetAggregateID(),
			"error", err,
		)
	}
}
