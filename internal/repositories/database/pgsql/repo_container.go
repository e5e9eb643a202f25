package pgsql

import (
	portsrepo "github.com/finbase/corebanking/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositories wires the pgx-backed repositories into the container handed
// to the service layer. maxAttempts bounds the ledger write retry loop.
func NewRepositories(dbPool *pgxpool.Pool, maxAttempts int) portsrepo.Container {
	accountRepo := newPgxAccountRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool, accountRepo, maxAttempts)
	cardRepo := newPgxCardRepository(dbPool)
	beneficiaryRepo := newPgxBeneficiaryRepository(dbPool)

	return portsrepo.Container{
		Account:     accountRepo,
		Ledger:      ledgerRepo,
		Card:        cardRepo,
		Beneficiary: beneficiaryRepo,
	}
}
