package ledger

import (
	"context"

	"lendity/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// InitializeUser creates the user's position record registered against
// quoteAssetID. A position exists once and forever after; an emptied
// position stays reusable, never destroyed.
func (s *service) InitializeUser(ctx context.Context, userID, quoteAssetID string) (string, error) {
	log := logger.FromContext(ctx).WithField("operation", "initialize_user")

	if userID == "" || quoteAssetID == "" {
		return "", core.ErrInvalidParameter
	}

	trace := traceID()
	err := s.db.Tx(func(tx *db.DB) error {
		position, e := s.positionStore.Find(ctx, userID)
		if e != nil {
			return e
		}

		if position.ID > 0 {
			return core.ErrAlreadyInitialized
		}

		position = &core.UserPosition{
			UserID:        userID,
			QuoteAssetID:  quoteAssetID,
			DepositShares: decimal.Zero,
			BorrowShares:  decimal.Zero,
		}

		if e := s.positionStore.Create(ctx, tx, position); e != nil {
			log.WithError(e).Errorln("create position error")
			return e
		}

		return s.opStore.Create(ctx, tx, &core.Operation{
			TraceID: trace,
			Type:    core.OpTypeInitUser,
			UserID:  userID,
			AssetID: quoteAssetID,
		})
	})
	if err != nil {
		return "", err
	}

	return trace, nil
}
