package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/clubdesk/transferdesk/internal/domain/entity"
	"github.com/clubdesk/transferdesk/internal/domain/errs"
	"github.com/clubdesk/transferdesk/internal/domain/utils/validator"
	"github.com/clubdesk/transferdesk/internal/ports/secondary"
)

// TransferService runs moves against the ledger. The repository does
// the atomic check-and-apply; this layer handles argument shape and the
// release rule.
type TransferService struct {
	transfers secondary.TransferRepository
	clubs     secondary.ClubRepository
	players   secondary.PlayerRepository
	logger    *zap.SugaredLogger
}

func NewTransferService(
	transfers secondary.TransferRepository,
	clubs secondary.ClubRepository,
	players secondary.PlayerRepository,
	logger *zap.SugaredLogger,
) *TransferService {
	return &TransferService{
		transfers: transfers,
		clubs:     clubs,
		players:   players,
		logger:    logger,
	}
}

// Transfer moves a player to the destination club for the given fee.
// With toClubID nil it is a release and the fee must be zero.
func (s *TransferService) Transfer(ctx context.Context, playerID string, toClubID *string, amount decimal.Decimal) (*entity.Transfer, error) {
	if !validator.Amount(amount) {
		return nil, fmt.Errorf("transfer fee %s: %w", amount, errs.ErrInvalidArgument)
	}
	if toClubID == nil && !amount.IsZero() {
		return nil, fmt.Errorf("release with fee %s: %w", amount, errs.ErrInvalidArgument)
	}

	entry, err := s.transfers.Record(ctx, playerID, toClubID, amount)
	if err != nil {
		return nil, err
	}

	dest := "free agency"
	if entry.ToClub != nil {
		dest = *entry.ToClub
	}
	s.logger.Infow("transfer recorded",
		"player", playerID,
		"to", dest,
		"amount", amount.String(),
	)
	return entry, nil
}

// Release moves the player to free agency for a zero fee.
func (s *TransferService) Release(ctx context.Context, playerID string) (*entity.Transfer, error) {
	return s.Transfer(ctx, playerID, nil, decimal.Zero)
}

// RenameClub gives the club a new identity, rewriting roster and
// ledger references so no record points at the old ID.
func (s *TransferService) RenameClub(ctx context.Context, oldID, newID, newName string) error {
	if !validator.EntityID(newID) {
		return fmt.Errorf("club id %q: %w", newID, errs.ErrInvalidArgument)
	}
	if !validator.DisplayName(newName) {
		return fmt.Errorf("club name %q: %w", newName, errs.ErrInvalidArgument)
	}
	if err := s.clubs.Reidentify(ctx, oldID, newID, newName); err != nil {
		return err
	}
	s.logger.Infow("club renamed", "from", oldID, "to", newID)
	return nil
}

// RenamePlayer gives the player a new identity, rewriting roster and
// ledger references so no record points at the old ID.
func (s *TransferService) RenamePlayer(ctx context.Context, oldID, newID, newName string) error {
	if !validator.EntityID(newID) {
		return fmt.Errorf("player id %q: %w", newID, errs.ErrInvalidArgument)
	}
	if !validator.DisplayName(newName) {
		return fmt.Errorf("player name %q: %w", newName, errs.ErrInvalidArgument)
	}
	if err := s.players.Reidentify(ctx, oldID, newID, newName); err != nil {
		return err
	}
	s.logger.Infow("player renamed", "from", oldID, "to", newID)
	return nil
}

func (s *TransferService) List(ctx context.Context) ([]*entity.Transfer, error) {
	return s.transfers.GetAll(ctx)
}

func (s *TransferService) ListForPlayer(ctx context.Context, playerID string) ([]*entity.Transfer, error) {
	return s.transfers.GetByPlayer(ctx, playerID)
}

func (s *TransferService) ListForClub(ctx context.Context, clubID string) ([]*entity.Transfer, error) {
	return s.transfers.GetByClub(ctx, clubID)
}

// Activity summarizes the whole ledger: entry count, fee totals and
// the single most expensive move.
func (s *TransferService) Activity(ctx context.Context) (*entity.Activity, error) {
	transfers, err := s.transfers.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	activity := &entity.Activity{
		Transfers:  len(transfers),
		TotalFees:  decimal.Zero,
		AverageFee: decimal.Zero,
	}
	for _, t := range transfers {
		activity.TotalFees = activity.TotalFees.Add(t.Amount)
		if activity.MostExpensive == nil || t.Amount.GreaterThan(activity.MostExpensive.Amount) {
			activity.MostExpensive = t
		}
	}
	if activity.Transfers > 0 {
		activity.AverageFee = activity.TotalFees.Div(decimal.NewFromInt(int64(activity.Transfers)))
	}
	return activity, nil
}
