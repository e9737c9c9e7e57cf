package service

import (
	"github.com/rs/zerolog"

	"github.com/hance08/tally/internal/config"
	"github.com/hance08/tally/internal/currency"
	"github.com/hance08/tally/internal/store"
)

type Service struct {
	Account     *AccountService
	Transaction *TransactionService
	Balance     *AccountBalanceService
	Rate        *RateService
}

// NewService wires the ledger services. cache may be nil.
func NewService(repo store.Repository, converter currency.Converter, cache RateInvalidator, cfg *config.Config, log zerolog.Logger) *Service {
	balance := NewAccountBalanceService(converter, log)

	return &Service{
		Account:     NewAccountService(repo, balance, cfg, log),
		Transaction: NewTransactionService(repo, balance, cfg, log),
		Balance:     balance,
		Rate:        NewRateService(repo, cache, log),
	}
}
