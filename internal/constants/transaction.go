package constants

const (
	// Transaction Types
	TypeIncome       = "income"
	TypeExpense      = "expense"
	TypeTransfer     = "transfer"
	TypeInstallment  = "installment"
	TypeSubscription = "subscription"
	TypeLoanPayment  = "loan_payment"
	TypeDebtPayment  = "debt_payment"

	// Status
	StatusPending   = "pending"
	StatusCompleted = "completed"

	// Date Layout
	DateFormat = "2006-01-02"

	DefaultListLimit = 50
)

// Subscription periods
const (
	PeriodDaily      = "daily"
	PeriodWeekly     = "weekly"
	PeriodMonthly    = "monthly"
	PeriodQuarterly  = "quarterly"
	PeriodBiannually = "biannually"
	PeriodAnnually   = "annually"
)

var TransactionTypes = []string{
	TypeIncome,
	TypeExpense,
	TypeTransfer,
	TypeInstallment,
	TypeSubscription,
	TypeLoanPayment,
	TypeDebtPayment,
}

var Periods = []string{
	PeriodDaily,
	PeriodWeekly,
	PeriodMonthly,
	PeriodQuarterly,
	PeriodBiannually,
	PeriodAnnually,
}
