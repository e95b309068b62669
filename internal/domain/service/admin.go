package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/clubdesk/transferdesk/internal/domain/entity"
	"github.com/clubdesk/transferdesk/internal/ports/secondary"
)

// AdminService exposes the store-wide operations: consistent snapshots
// and tenant purges.
type AdminService struct {
	store  secondary.Store
	logger *zap.SugaredLogger
}

func NewAdminService(store secondary.Store, logger *zap.SugaredLogger) *AdminService {
	return &AdminService{
		store:  store,
		logger: logger,
	}
}

// Backup returns a point-in-time copy of every collection.
func (s *AdminService) Backup(ctx context.Context) (*entity.Snapshot, error) {
	snapshot, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Infow("snapshot taken",
		"clubs", len(snapshot.Clubs),
		"players", len(snapshot.Players),
		"transfers", len(snapshot.Transfers),
	)
	return snapshot, nil
}

// PurgeTenant removes every record whose ID carries the tenant prefix,
// ledger entries included.
func (s *AdminService) PurgeTenant(ctx context.Context, prefix string) (entity.PurgeResult, error) {
	result, err := s.store.PurgeTenant(ctx, prefix)
	if err != nil {
		return entity.PurgeResult{}, err
	}
	s.logger.Infow("tenant purged",
		"prefix", prefix,
		"clubs", result.Clubs,
		"players", result.Players,
		"transfers", result.Transfers,
	)
	return result, nil
}
