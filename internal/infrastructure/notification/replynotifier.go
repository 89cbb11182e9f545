// Package notification reacts to ticket events outside the request path.
package notification

import (
	"github.com/supportdesk/supportdesk/internal/domain/shared/events"
	"github.com/supportdesk/supportdesk/internal/domain/ticket"
	"github.com/supportdesk/supportdesk/internal/infrastructure/email"
	"github.com/supportdesk/supportdesk/internal/shared/authorization"
	"github.com/supportdesk/supportdesk/internal/shared/logger"
)

// ReplyMailer sends the owner-facing reply email.
type ReplyMailer interface {
	SendReplyNotification(notice email.ReplyNotice) error
}

// ReplyNotifier mails the ticket owner whenever support answers.
type ReplyNotifier struct {
	mailer ReplyMailer
	logger logger.Interface
}

func NewReplyNotifier(mailer ReplyMailer, logger logger.Interface) *ReplyNotifier {
	return &ReplyNotifier{mailer: mailer, logger: logger}
}

func (n *ReplyNotifier) Handle(event events.DomainEvent) error {
	e, ok := event.(ticket.MessageSentEvent)
	if !ok || e.SenderRole != authorization.RoleAdmin.String() {
		return nil
	}

	err := n.mailer.SendReplyNotification(email.ReplyNotice{
		TicketID:    e.GetAggregateID(),
		TicketTitle: e.TicketTitle,
		OwnerName:   e.OwnerName,
		OwnerEmail:  e.OwnerEmail,
		AgentName:   e.SenderName,
		Content:     e.Content,
	})
	if err != nil {
		n.logger.Errorw("failed to send reply notification",
			"ticket_id", e.GetAggregateID(),
			"message_id", e.MessageID,
			"error", err,
		)
		return err
	}

	n.logger.Infow("reply notification sent",
		"ticket_id", e.GetAggregateID(),
		"message_id", e.MessageID,
	)
	return nil
}
