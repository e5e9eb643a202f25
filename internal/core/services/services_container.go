package services

import (
	portsrepo "github.com/finbase/corebanking/internal/core/ports/repositories"
	portssvc "github.com/finbase/corebanking/internal/core/ports/services"
	"github.com/finbase/corebanking/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.Container, cache portssvc.Cache) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(
		repos.Account,
		repos.Ledger,
		repos.Card,
		cache,
		cfg.AccountCacheTTL,
		cfg.BalanceCacheTTL,
	)
	container.Transaction = NewTransactionService(repos.Account, repos.Ledger, cache)
	container.Card = NewCardService(repos.Card, repos.Account)
	container.Beneficiary = NewBeneficiaryService(repos.Beneficiary)

	return container
}
