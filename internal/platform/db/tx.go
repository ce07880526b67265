package db

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// Transactor runs a group of writes atomically.
// Repositories obtain the active handle through Conn, so a usecase can span
// several repositories inside one WithinTransaction call without knowing about gorm.
type Transactor struct {
	db *gorm.DB
}

// NewTransactor は指定されたDB接続でTransactorを生成します。
func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db}
}

// WithinTransaction は fn をひとつのトランザクション内で実行します。
// fn がエラーを返すかpanicした場合はロールバックされ、成功時のみコミットされます。
// 既にトランザクション内であれば、それを再利用します（ネストはしません）。
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// Conn returns the transaction bound to ctx, or db scoped to ctx when none is active.
func Conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
