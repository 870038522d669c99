package services

import (
	portsrepo "github.com/smirnov-vv/ipledger/internal/core/ports/repositories"
	portssvc "github.com/smirnov-vv/ipledger/internal/core/ports/services"
	"github.com/smirnov-vv/ipledger/internal/platform/config"
)

// NewServiceContainer wires every service against the given store.
func NewServiceContainer(cfg *config.Config, store portsrepo.Store) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Operation: NewOperationService(),
		User:      NewUserService(store, cfg.AdminIDs, cfg.AdminInviteCode),
		Entity:    NewEntityService(store),
		Debt:      NewDebtService(store),
		Ledger:    NewLedgerService(store),
		Reporting: NewReportingService(store),
		Token:     NewTokenService(cfg),
	}
}
