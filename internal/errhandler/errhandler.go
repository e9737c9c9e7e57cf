package errhandler

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"

	"github.com/hance08/tally/internal/apperrors"
	"github.com/hance08/tally/internal/constants"
)

// Exit codes returned by HandleError.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUsage    = 2
	ExitConflict = 3
)

// HandleError prints err for a terminal user and returns the process exit code.
func HandleError(err error) int {
	if err == nil {
		return ExitOK
	}
	if IsInterrupt(err) {
		pterm.Warning.Println("Operation Cancelled")
		return ExitOK
	}

	var (
		ve  *apperrors.ValidationError
		ibe *apperrors.InsufficientBalanceError
		ute *apperrors.UnknownTypeError
		nfe *apperrors.NotFoundError
		ce  *apperrors.ConflictError
		pe  *apperrors.PersistenceError
	)
	switch {
	case errors.As(err, &ve):
		pterm.Error.Printfln("Invalid %s: %s", ve.Field, ve.Reason)
		return ExitUsage
	case errors.As(err, &ibe):
		if ibe.Reason != "" {
			pterm.Error.Printfln("Account %d: %s", ibe.AccountID, ibe.Reason)
		} else {
			pterm.Error.Printfln("Account %d has %s %s available, %s %s requested",
				ibe.AccountID,
				ibe.Available.StringFixed(constants.MoneyScale), ibe.Currency,
				ibe.Requested.StringFixed(constants.MoneyScale), ibe.Currency)
		}
		return ExitFailure
	case errors.As(err, &ute):
		pterm.Error.Println(ute.Error())
		return ExitUsage
	case errors.As(err, &nfe):
		pterm.Error.Println(nfe.Error())
		return ExitFailure
	case errors.As(err, &ce):
		pterm.Error.Println(ce.Error())
		pterm.Info.Println("Another change touched the same data. Please try again.")
		return ExitConflict
	case errors.As(err, &pe):
		pterm.Error.Printfln("Database error during %s", pe.Op)
		fmt.Fprintf(os.Stderr, "  %v\n", pe.Err)
		return ExitFailure
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return ExitFailure
}

// IsInterrupt reports whether err comes from the user aborting a prompt.
func IsInterrupt(err error) bool {
	return errors.Is(err, terminal.InterruptErr) ||
		errors.Is(err, huh.ErrUserAborted) ||
		strings.Contains(err.Error(), "interrupt")
}
