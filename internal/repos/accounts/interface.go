package accounts

import (
	"context"
	"errors"
	"time"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountExists   = errors.New("account already exists")
	ErrVersionConflict = errors.New("account was modified concurrently")
)

// Account is one player's persisted balances.
type Account struct {
	ID          string    `db:"uuid"`
	DisplayName string    `db:"player_name"`
	Cash        float64   `db:"cash"`
	Bank        float64   `db:"bank"`
	Version     int64     `db:"version"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (a *Account) TotalWealth() float64 {
	return a.Cash + a.Bank
}

// Store is durable keyed storage of account records. It has no cross-record
// transactions.
//
// Update is conditional: it only applies when the stored version equals
// acc.Version, and on success bumps acc.Version. Otherwise it returns
// ErrVersionConflict (or ErrAccountNotFound if the record is gone).
//
// GetAll returns records in a stable scan order (creation order).
type Store interface {
	Get(ctx context.Context, id string) (*Account, error)
	Insert(ctx context.Context, acc *Account) error
	Update(ctx context.Context, acc *Account) error
	GetAll(ctx context.Context) ([]*Account, error)
}
