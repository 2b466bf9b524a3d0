package persistence

import (
	"context"

	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/fiscal"
	"gorm.io/gorm"
)

// GormRevisionUnitOfWork implements fiscal.RevisionUnitOfWork on top of a
// GORM transaction. The repositories handed to the callback are bound to the
// transaction, so the close guard's re-read and the month-state flip commit
// or roll back together.
type GormRevisionUnitOfWork struct {
	db *gorm.DB
}

// NewGormRevisionUnitOfWork creates a new GormRevisionUnitOfWork
func NewGormRevisionUnitOfWork(db *gorm.DB) *GormRevisionUnitOfWork {
	return &GormRevisionUnitOfWork{db: db}
}

// WithinTx runs fn inside a single database transaction
func (u *GormRevisionUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, repos fiscal.RevisionTxRepos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := fiscal.RevisionTxRepos{
			Receipts:      NewGormReceiptRepository(tx),
			MonthStatuses: NewGormMonthStatusRepository(tx),
		}
		return fn(ctx, repos)
	})
}
