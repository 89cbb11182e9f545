package ticket

import "errors"

var (
	// ErrTicketNotFound is returned when no ticket has the requested ID.
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrTicketResolved is returned when appending to a resolved ticket.
	ErrTicketResolved = errors.New("ticket is resolved")

	// ErrEmptyMessage is returned when message content is blank.
	ErrEmptyMessage = errors.New("message content is empty")

	// ErrMessageTicketMismatch is returned when a message belongs to another ticket.
	ErrMessageTicketMismatch = errors.New("message belongs to a different ticket")
)
