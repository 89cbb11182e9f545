package notification

import (
	"github.com/supportdesk/supportdesk/internal/domain/shared/events"
	"github.com/supportdesk/supportdesk/internal/domain/ticket"
)

// Subscribe wires the audit logger to every ticket event and, when a notifier
// is given, the reply notifier to sent messages.
func Subscribe(subscriber events.EventSubscriber, audit *AuditLogger, notifier *ReplyNotifier) error {
	for _, eventType := range []string{
		ticket.EventTicketCreated,
		ticket.EventTicketMessageSent,
		ticket.EventTicketStatusChanged,
		ticket.EventTicketReplaced,
	} {
		if err := subscriber.Subscribe(eventType, audit); err != nil {
			return err
		}
	}

	if notifier == nil {
		return nil
	}
	return subscriber.Subscribe(ticket.EventTicketMessageSent, notifier)
}
