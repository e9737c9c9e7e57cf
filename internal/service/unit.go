package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hance08/tally/internal/apperrors"
	"github.com/hance08/tally/internal/store"
)

// unitRunner runs atomic units against the store, retrying the whole unit
// when it loses a write race.
type unitRunner struct {
	repo       store.Repository
	maxRetries int
	log        zerolog.Logger
}

func (u unitRunner) run(ctx context.Context, op string, fn func(store.Repository) error) error {
	var err error
	for attempt := 0; attempt <= u.maxRetries; attempt++ {
		if attempt > 0 {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return &apperrors.PersistenceError{Op: op, Err: ctxErr}
			}
			u.log.Debug().Err(err).Str("op", op).Int("attempt", attempt).Msg("retrying atomic unit")
		}

		err = u.repo.ExecTx(ctx, fn)
		if err == nil {
			return nil
		}
		if !store.IsRetryable(err) {
			return classify(op, err)
		}
	}

	u.log.Warn().Err(err).Str("op", op).Msg("giving up after concurrent updates")
	return &apperrors.ConflictError{
		Resource: "account",
		Reason:   fmt.Sprintf("%s lost %d concurrent update races", op, u.maxRetries+1),
	}
}

// classify maps a failure that escaped an atomic unit onto the typed taxonomy.
func classify(op string, err error) error {
	switch {
	case apperrors.IsTyped(err):
		return err
	case errors.Is(err, store.ErrDuplicateReference):
		return &apperrors.ConflictError{Resource: "transaction", Reason: "reference already recorded"}
	case errors.Is(err, store.ErrAccountExists):
		return apperrors.Validation("name", "an account with this name already exists")
	default:
		return &apperrors.PersistenceError{Op: op, Err: err}
	}
}
