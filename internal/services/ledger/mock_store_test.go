package ledger

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fastprodman/playereconomy/internal/repos/accounts"
)

type mockStore struct {
	mock.Mock
}

var _ accounts.Store = (*mockStore)(nil)

func (m *mockStore) Get(ctx context.Context, id string) (*accounts.Account, error) {
	args := m.Called(ctx, id)
	acc, _ := args.Get(0).(*accounts.Account)

	return acc, args.Error(1)
}

func (m *mockStore) Insert(ctx context.Context, acc *accounts.Account) error {
	args := m.Called(ctx, acc)
	return args.Error(0)
}

func (m *mockStore) Update(ctx context.Context, acc *accounts.Account) error {
	args := m.Called(ctx, acc)
	return args.Error(0)
}

func (m *mockStore) GetAll(ctx context.Context) ([]*accounts.Account, error) {
	args := m.Called(ctx)
	all, _ := args.Get(0).([]*accounts.Account)

	return all, args.Error(1)
}

// expectGet queues one Get(id) answer with a fresh record.
func (m *mockStore) expectGet(id string, cash, bank float64, version int64) {
	m.On("Get", mock.Anything, id).
		Return(&accounts.Account{ID: id, Cash: cash, Bank: bank, Version: version}, nil).
		Once()
}

// expectUpdate queues one Update answer for a write of id with the given cash.
func (m *mockStore) expectUpdate(id string, cash float64, err error) {
	m.On("Update", mock.Anything, mock.MatchedBy(func(acc *accounts.Account) bool {
		return acc.ID == id && acc.Cash == cash
	})).Return(err).Once()
}
