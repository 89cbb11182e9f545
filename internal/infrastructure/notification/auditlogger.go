package notification

import (
	"github.com/supportdesk/supportdesk/internal/domain/shared/events"
	"github.com/supportdesk/supportdesk/internal/domain/ticket"
	"github.com/supportdesk/supportdesk/internal/shared/biztime"
	"github.com/supportdesk/supportdesk/internal/shared/logger"
	"github.com/supportdesk/supportdesk/internal/shared/utils/logutil"
)

const auditPreviewRunes = 80

// AuditLogger writes one structured line per ticket event.
type AuditLogger struct {
	logger logger.Interface
}

func NewAuditLogger(log logger.Interface) *AuditLogger {
	return &AuditLogger{logger: log.Named("audit")}
}

func (a *AuditLogger) Handle(event events.DomainEvent) error {
	fields := []any{
		"event", event.GetEventType(),
		"ticket_id", event.GetAggregateID(),
		"occurred_at", biztime.FormatISO(event.GetOccurredAt()),
	}

	switch e := event.(type) {
	case ticket.TicketCreatedEvent:
		fields = append(fields, "user_id", e.UserID, "priority", e.Priority, "title", logutil.Preview(e.Title, auditPreviewRunes))
	case ticket.MessageSentEvent:
		fields = append(fields, "message_id", e.MessageID, "sender_role", e.SenderRole, "content", logutil.Preview(e.Content, auditPreviewRunes))
	case ticket.TicketStatusChangedEvent:
		fields = append(fields, "old_status", e.OldStatus, "new_status", e.NewStatus, "changed_by", e.ChangedBy)
	case ticket.TicketReplacedEvent:
		fields = append(fields, "replaced_by", e.ReplacedBy, "message_count", e.MessageCount)
	}

	a.logger.Infow("ticket event", fields...)
	return nil
}
