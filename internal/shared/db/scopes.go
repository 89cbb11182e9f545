package db

import (
	"gorm.io/gorm"
)

// Scope is a reusable gorm query modifier.
type Scope = func(db *gorm.DB) *gorm.DB

// WhereIf applies column = value only when value is non-empty, which lets an
// optional filter field be passed through unchanged.
//
//	db.Scopes(db.WhereIf("status", filter.Status)).Find(&rows)
func WhereIf(column, value string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if value == "" {
			return db
		}
		return db.Where(column+" = ?", value)
	}
}

// OrderBySeqDesc orders rows newest insertion first using the seq column.
func OrderBySeqDesc() Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("seq DESC")
	}
}
