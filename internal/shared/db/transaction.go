// Package db provides transaction management and query scopes shared by the
// ticket stores.
package db

import (
	"context"
	"sync"

	"gorm.io/gorm"
)

// txKey is the context key for storing transaction.
type txKey struct{}

// TransactionManager runs a unit of work so that no other mutation
// interleaves with it.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// GormTransactionManager wraps fn in a database transaction. The transaction
// handle travels in the context and is picked up by GetTxFromContext.
type GormTransactionManager struct {
	db *gorm.DB
}

func NewGormTransactionManager(db *gorm.DB) *GormTransactionManager {
	return &GormTransactionManager{db: db}
}

func (tm *GormTransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// GetTxFromContext returns the transaction from context if available.
func GetTxFromContext(ctx context.Context, defaultDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return defaultDB.WithContext(ctx)
}

type lockedKey struct{}

// LockingTransactionManager serializes units of work with a mutex. It backs
// the memory store, which has no rollback; fn must validate before it writes.
type LockingTransactionManager struct {
	mu sync.Mutex
}

func NewLockingTransactionManager() *LockingTransactionManager {
	return &LockingTransactionManager{}
}

func (tm *LockingTransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(lockedKey{}) == tm {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return fn(context.WithValue(ctx, lockedKey{}, tm))
}
