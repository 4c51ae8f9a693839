// Package provider exposes the ledger through the generic economy-provider
// contract used by third-party integrations. Only the player's cash balance
// is visible through it; shared banks are reported as unsupported.
package provider

import (
	"context"
	"fmt"

	"github.com/fastprodman/playereconomy/internal/repos/accounts"
	"github.com/fastprodman/playereconomy/internal/services/ledger"
)

const (
	Name             = "PlayerEconomy"
	FractionalDigits = 2
)

type ResponseType string

const (
	Success        ResponseType = "SUCCESS"
	Failure        ResponseType = "FAILURE"
	NotImplemented ResponseType = "NOT_IMPLEMENTED"
)

const (
	msgNegativeWithdraw = "Cannot withdraw negative amount"
	msgNegativeDeposit  = "Cannot deposit negative amount"
	msgInsufficient     = "Insufficient funds"
	msgDepositFailed    = "Deposit failed"
	msgSharedBanks      = "shared banks are not supported"
)

// Response is the outcome of a balance-changing provider call.
type Response struct {
	Amount  float64      `json:"amount"`
	Balance float64      `json:"balance"`
	Type    ResponseType `json:"type"`
	Message string       `json:"message"`
}

func (r Response) OK() bool {
	return r.Type == Success
}

// Ledger is the part of the ledger the provider drives.
type Ledger interface {
	HasAccount(ctx context.Context, id string) (bool, error)
	GetOrCreate(ctx context.Context, id, displayName string) (*accounts.Account, error)
	GetCash(ctx context.Context, id string) (float64, error)
	AddCash(ctx context.Context, id string, amount float64) error
	TakeCash(ctx context.Context, id string, amount float64) error
	FormatAmount(amount float64) string
}

type Provider struct {
	ledger       Ledger
	currencyName string
}

func New(l Ledger, currencyName string) *Provider {
	return &Provider{ledger: l, currencyName: currencyName}
}

func (p *Provider) Name() string { return Name }
func (p *Provider) Enabled() bool { return true }
func (p *Provider) HasBankSupport() bool { return false }
func (p *Provider) FractionalDigits() int { return FractionalDigits }
func (p *Provider) CurrencyNameSingular() string { return p.currencyName }
func (p *Provider) CurrencyNamePlural() string { return p.currencyName }

func (p *Provider) Format(amount float64) string {
	return p.ledger.FormatAmount(amount)
}

func (p *Provider) HasAccount(ctx context.Context, playerID string) (bool, error) {
	return p.ledger.HasAccount(ctx, playerID)
}

// CreateAccount reports false when the player already has an account.
func (p *Provider) CreateAccount(ctx context.Context, playerID, playerName string) (bool, error) {
	ok, err := p.ledger.HasAccount(ctx, playerID)
	if err != nil {
		return false, fmt.Errorf("check account: %w", err)
	}

	if ok {
		return false, nil
	}

	_, err = p.ledger.GetOrCreate(ctx, playerID, playerName)
	if err != nil {
		return false, fmt.Errorf("create account: %w", err)
	}

	return true, nil
}

func (p *Provider) Balance(ctx context.Context, playerID string) (float64, error) {
	return p.ledger.GetCash(ctx, playerID)
}

func (p *Provider) Has(ctx context.Context, playerID string, amount float64) (bool, error) {
	cash, err := p.ledger.GetCash(ctx, playerID)
	if err != nil {
		return false, err
	}

	return cash >= amount, nil
}

// Withdraw takes amount from the player's cash. Rule violations come back as
// a FAILURE response; only storage failures are returned as errors.
func (p *Provider) Withdraw(ctx context.Context, playerID string, amount float64) (Response, error) {
	if amount < 0 {
		return Response{Amount: amount, Type: Failure, Message: msgNegativeWithdraw}, nil
	}

	return p.apply(ctx, playerID, amount, p.ledger.TakeCash, msgInsufficient)
}

// Deposit adds amount to the player's cash.
func (p *Provider) Deposit(ctx context.Context, playerID string, amount float64) (Response, error) {
	if amount < 0 {
		return Response{Amount: amount, Type: Failure, Message: msgNegativeDeposit}, nil
	}

	return p.apply(ctx, playerID, amount, p.ledger.AddCash, msgDepositFailed)
}

func (p *Provider) apply(
	ctx context.Context,
	playerID string,
	amount float64,
	op func(ctx context.Context, id string, amount float64) error,
	failMsg string,
) (Response, error) {
	opErr := op(ctx, playerID, amount)
	if opErr != nil && !ledger.IsRuleViolation(opErr) {
		return Response{}, opErr
	}

	balance, err := p.ledger.GetCash(ctx, playerID)
	if err != nil {
		return Response{}, err
	}

	if opErr != nil {
		return Response{Amount: amount, Balance: balance, Type: Failure, Message: failMsg}, nil
	}

	return Response{Amount: amount, Balance: balance, Type: Success}, nil
}

func notImplemented() Response {
	return Response{Type: NotImplemented, Message: msgSharedBanks}
}

func (p *Provider) CreateBank(string, string) Response { return notImplemented() }
func (p *Provider) DeleteBank(string) Response { return notImplemented() }
func (p *Provider) BankBalance(string) Response { return notImplemented() }
func (p *Provider) BankHas(string, float64) Response { return notImplemented() }
func (p *Provider) BankWithdraw(string, float64) Response { return notImplemented() }
func (p *Provider) BankDeposit(string, float64) Response { return notImplemented() }
func (p *Provider) IsBankOwner(string, string) Response { return notImplemented() }
func (p *Provider) IsBankMember(string, string) Response { return notImplemented() }
func (p *Provider) Banks() []string { return []string{} }

