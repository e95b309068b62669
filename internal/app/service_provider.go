package app

import (
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/clubdesk/transferdesk/internal/adapters/config"
	"github.com/clubdesk/transferdesk/internal/adapters/secondary/boltdb"
	"github.com/clubdesk/transferdesk/internal/adapters/secondary/jsondb"
	"github.com/clubdesk/transferdesk/internal/domain/service"
	"github.com/clubdesk/transferdesk/internal/ports/primary"
	"github.com/clubdesk/transferdesk/internal/ports/secondary"
	"github.com/clubdesk/transferdesk/pkg/logger"
)

type serviceProvider struct {
	// Configuration
	cfg *config.Config

	// Infrastructure
	store secondary.Store
	clock clockwork.Clock

	// Storage layer
	clubRepo     secondary.ClubRepository
	playerRepo   secondary.PlayerRepository
	transferRepo secondary.TransferRepository

	// Service layer
	clubService     primary.ClubService
	playerService   primary.PlayerService
	transferService primary.TransferService
	adminService    primary.AdminService
}

func newServiceProvider() *serviceProvider {
	cfg, err := config.NewConfig()
	if err != nil {
		panic(fmt.Errorf("failed to create config: %w", err))
	}

	return &serviceProvider{
		cfg:   cfg,
		clock: clockwork.NewRealClock(),
	}
}

// Infrastructure dependencies

func (s *serviceProvider) Store() secondary.Store {
	if s.store == nil {
		var (
			store secondary.Store
			err   error
		)
		switch driver := s.cfg.Storage.Driver(); driver {
		case "bolt":
			store, err = boltdb.Open(s.cfg.Storage.BoltPath(), s.clock)
		default:
			store, err = jsondb.Open(s.cfg.Storage.Dir(), s.clock)
		}
		if err != nil {
			panic(fmt.Errorf("failed to open store: %w", err))
		}
		logger.Log.Infof("Store opened (driver: %s)", s.cfg.Storage.Driver())

		s.store = store
	}

	return s.store
}

// Storage layer

func (s *serviceProvider) ClubRepo() secondary.ClubRepository {
	if s.clubRepo == nil {
		s.clubRepo = s.Store().Clubs()
	}

	return s.clubRepo
}

func (s *serviceProvider) PlayerRepo() secondary.PlayerRepository {
	if s.playerRepo == nil {
		s.playerRepo = s.Store().Players()
	}

	return s.playerRepo
}

func (s *serviceProvider) TransferRepo() secondary.TransferRepository {
	if s.transferRepo == nil {
		s.transferRepo = s.Store().Transfers()
	}

	return s.transferRepo
}

// Service layer

func (s *serviceProvider) ClubService() primary.ClubService {
	if s.clubService == nil {
		s.clubService = service.NewClubService(s.ClubRepo())
	}

	return s.clubService
}

func (s *serviceProvider) PlayerService() primary.PlayerService {
	if s.playerService == nil {
		s.playerService = service.NewPlayerService(s.PlayerRepo(), s.clock)
	}

	return s.playerService
}

func (s *serviceProvider) TransferService() primary.TransferService {
	if s.transferService == nil {
		transferLogger, err := logger.Named("transfer")
		if err != nil {
			panic(fmt.Errorf("failed to create transfer logger: %w", err))
		}

		s.transferService = service.NewTransferService(
			s.TransferRepo(),
			s.ClubRepo(),
			s.PlayerRepo(),
			transferLogger,
		)
	}

	return s.transferService
}

func (s *serviceProvider) AdminService() primary.AdminService {
	if s.adminService == nil {
		adminLogger, err := logger.Named("admin")
		if err != nil {
			panic(fmt.Errorf("failed to create admin logger: %w", err))
		}

		s.adminService = service.NewAdminService(s.Store(), adminLogger)
	}

	return s.adminService
}

// Cfg returns the config
func (s *serviceProvider) Cfg() *config.Config {
	return s.cfg
}
