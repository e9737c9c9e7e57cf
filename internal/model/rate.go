package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate prices one unit of Base in Quote, effective from AsOf.
type ExchangeRate struct {
	ID    int64
	Base  string
	Quote string
	Rate  decimal.Decimal
	AsOf  time.Time
}
