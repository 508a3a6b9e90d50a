package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxRunner abre una transacción de almacenamiento y ejecuta fn dentro de ella.
// Cualquier error de fn revierte todo lo escrito. Los servicios reciben el
// runner por inyección; los tests lo sustituyen por un runner en memoria.
type TxRunner interface {
	RunTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormTxRunner struct{ db *gorm.DB }

func NewTxRunner(db *gorm.DB) TxRunner { return &gormTxRunner{db: db} }

func (r *gormTxRunner) RunTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
