package models

import "gorm.io/datatypes"

// TicketModel stores one ticket row. Seq grows with every insert and gives
// the newest-first order; IDs are random and carry no order.
type TicketModel struct {
	Seq         uint64         `gorm:"primaryKey;autoIncrement"`
	TicketID    string         `gorm:"uniqueIndex;size:64;not null"`
	Title       string         `gorm:"size:200;not null"`
	Description string         `gorm:"type:text;not null"`
	Status      string         `gorm:"size:20;not null;index"`
	Priority    string         `gorm:"size:20;not null"`
	UserID      string         `gorm:"size:64;not null;index"`
	UserName    string         `gorm:"size:100;not null"`
	UserEmail   string         `gorm:"size:255;not null"`
	Attachments datatypes.JSON `gorm:"type:json"`
	CreatedAt   int64          `gorm:"not null"`
	UpdatedAt   int64          `gorm:"not null"`

	// Note: No foreign key constraints or associations.
	// Messages are loaded by ticket_id in a second query.
}

func (TicketModel) TableName() string {
	return "tickets"
}

// MessageModel stores one conversation entry. Position keeps the order the
// messages were appended in.
type MessageModel struct {
	Seq        uint64 `gorm:"primaryKey;autoIncrement"`
	MessageID  string `gorm:"size:64;not null;index"`
	TicketID   string `gorm:"size:64;not null;index"`
	Position   int    `gorm:"not null"`
	Content    string `gorm:"type:text;not null"`
	SenderRole string `gorm:"size:20;not null"`
	SenderName string `gorm:"size:100;not null"`
	Timestamp  int64  `gorm:"not null"`
}

func (MessageModel) TableName() string {
	return "ticket_messages"
}

// AutoMigrateModels lists every table the store needs.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&TicketModel{},
		&MessageModel{},
	}
}
