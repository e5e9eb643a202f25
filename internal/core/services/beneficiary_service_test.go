package services_test

import (
	"context"
	"testing"

	"github.com/finbase/corebanking/internal/apperrors"
	"github.com/finbase/corebanking/internal/core/domain"
	portsrepo "github.com/finbase/corebanking/internal/core/ports/repositories"
	portssvc "github.com/finbase/corebanking/internal/core/ports/services"
	"github.com/finbase/corebanking/internal/core/services"
	"github.com/finbase/corebanking/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock BeneficiaryRepository ---
type MockBeneficiaryRepository struct {
	mock.Mock
}

var _ portsrepo.BeneficiaryRepository = (*MockBeneficiaryRepository)(nil)

func (m *MockBeneficiaryRepository) BeneficiaryExists(ctx context.Context, userID, accountNumber string) (bool, error) {
	args := m.Called(ctx, userID, accountNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockBeneficiaryRepository) SaveBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) error {
	args := m.Called(ctx, beneficiary)
	return args.Error(0)
}

func (m *MockBeneficiaryRepository) FindBeneficiariesByUserID(ctx context.Context, userID string) ([]domain.Beneficiary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Beneficiary), args.Error(1)
}

func (m *MockBeneficiaryRepository) DeleteBeneficiary(ctx context.Context, beneficiaryID, userID string) error {
	args := m.Called(ctx, beneficiaryID, userID)
	return args.Error(0)
}

type BeneficiaryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockBeneficiaryRepository
	service  portssvc.BeneficiarySvcFacade
	userID   string
}

func (suite *BeneficiaryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockBeneficiaryRepository)
	suite.service = services.NewBeneficiaryService(suite.mockRepo)
	suite.userID = uuid.NewString()
}

func (suite *BeneficiaryServiceTestSuite) TestCreateBeneficiarySuccess() {
	ctx := context.Background()
	suite.mockRepo.On("BeneficiaryExists", ctx, suite.userID, "ACC987654321").Return(false, nil).Once()
	suite.mockRepo.On("SaveBeneficiary", ctx, mock.Anything).Return(nil).Once()

	beneficiary, err := suite.service.CreateBeneficiary(ctx, suite.userID, dto.CreateBeneficiaryRequest{
		BeneficiaryName: "Alice",
		AccountNumber:   "ACC987654321",
		Nickname:        "ali",
		IsFavorite:      true,
	})

	suite.Require().NoError(err)
	suite.Equal(suite.userID, beneficiary.UserID)
	suite.Equal("Alice", beneficiary.BeneficiaryName)
	suite.True(beneficiary.IsFavorite)
	suite.NotEmpty(beneficiary.BeneficiaryID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BeneficiaryServiceTestSuite) TestCreateBeneficiaryDuplicate() {
	ctx := context.Background()
	suite.mockRepo.On("BeneficiaryExists", ctx, suite.userID, "ACC987654321").Return(true, nil).Once()

	beneficiary, err := suite.service.CreateBeneficiary(ctx, suite.userID, dto.CreateBeneficiaryRequest{
		BeneficiaryName: "Alice",
		AccountNumber:   "ACC987654321",
	})

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(beneficiary)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveBeneficiary", mock.Anything, mock.Anything)
}

func (suite *BeneficiaryServiceTestSuite) TestListBeneficiaries() {
	ctx := context.Background()
	saved := []domain.Beneficiary{
		{BeneficiaryID: uuid.NewString(), UserID: suite.userID, BeneficiaryName: "Bob", IsFavorite: true},
		{BeneficiaryID: uuid.NewString(), UserID: suite.userID, BeneficiaryName: "Carol"},
	}
	suite.mockRepo.On("FindBeneficiariesByUserID", ctx, suite.userID).Return(saved, nil).Once()

	beneficiaries, err := suite.service.ListBeneficiaries(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Len(beneficiaries, 2)
}

func (suite *BeneficiaryServiceTestSuite) TestDeleteBeneficiaryNotFound() {
	ctx := context.Background()
	id := uuid.NewString()
	suite.mockRepo.On("DeleteBeneficiary", ctx, id, suite.userID).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteBeneficiary(ctx, id, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func TestBeneficiaryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BeneficiaryServiceTestSuite))
}
