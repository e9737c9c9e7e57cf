package constants

// Account types
const (
	AccountBankAccount  = "bank_account"
	AccountCreditCard   = "credit_card"
	AccountCryptoWallet = "crypto_wallet"
	AccountVirtualPOS   = "virtual_pos"
	AccountCash         = "cash"
	AccountDebt         = "debt"
)

// Account status
const (
	AccountStatusActive   = "active"
	AccountStatusInactive = "inactive"
)

const (
	MaxNameLen = 100
	// MoneyScale is the number of decimal places every persisted balance is rounded to.
	MoneyScale = 2
)

var AccountTypes = []string{
	AccountBankAccount,
	AccountCreditCard,
	AccountCryptoWallet,
	AccountVirtualPOS,
	AccountCash,
	AccountDebt,
}

func IsAccountType(t string) bool {
	for _, v := range AccountTypes {
		if v == t {
			return true
		}
	}
	return false
}
