package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finbase/corebanking/internal/apperrors"
	"github.com/finbase/corebanking/internal/core/domain"
	portsrepo "github.com/finbase/corebanking/internal/core/ports/repositories"
	portssvc "github.com/finbase/corebanking/internal/core/ports/services"
	"github.com/finbase/corebanking/internal/dto"
	"github.com/finbase/corebanking/internal/middleware"
)

// beneficiaryService manages saved transfer counterparties.
type beneficiaryService struct {
	beneficiaryRepo portsrepo.BeneficiaryRepository
}

// NewBeneficiaryService creates a new beneficiary service.
func NewBeneficiaryService(beneficiaryRepo portsrepo.BeneficiaryRepository) portssvc.BeneficiarySvcFacade {
	return &beneficiaryService{beneficiaryRepo: beneficiaryRepo}
}

// Ensure beneficiaryService implements the portssvc.BeneficiarySvcFacade interface
var _ portssvc.BeneficiarySvcFacade = (*beneficiaryService)(nil)

// ListBeneficiaries returns the user's saved counterparties, favorites first.
func (s *beneficiaryService) ListBeneficiaries(ctx context.Context, userID string) ([]domain.Beneficiary, error) {
	return s.beneficiaryRepo.FindBeneficiariesByUserID(ctx, userID)
}

// CreateBeneficiary saves a new counterparty for the user. Each account
// number can be saved once per user.
func (s *beneficiaryService) CreateBeneficiary(ctx context.Context, userID string, req dto.CreateBeneficiaryRequest) (*domain.Beneficiary, error) {
	exists, err := s.beneficiaryRepo.BeneficiaryExists(ctx, userID, req.AccountNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: beneficiary %s already saved", apperrors.ErrDuplicate, req.AccountNumber)
	}

	beneficiary := domain.Beneficiary{
		BeneficiaryID:   uuid.NewString(),
		UserID:          userID,
		BeneficiaryName: req.BeneficiaryName,
		AccountNumber:   req.AccountNumber,
		Nickname:        req.Nickname,
		IsFavorite:      req.IsFavorite,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.beneficiaryRepo.SaveBeneficiary(ctx, beneficiary); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("beneficiary saved", "beneficiary_id", beneficiary.BeneficiaryID)
	return &beneficiary, nil
}

// DeleteBeneficiary removes one of the user's saved counterparties.
func (s *beneficiaryService) DeleteBeneficiary(ctx context.Context, beneficiaryID, userID string) error {
	if err := s.beneficiaryRepo.DeleteBeneficiary(ctx, beneficiaryID, userID); err != nil {
		return err
	}
	middleware.GetLoggerFromCtx(ctx).Info("beneficiary deleted", "beneficiary_id", beneficiaryID)
	return nil
}
