package dto

// CreateBeneficiaryRequest saves a transfer counterparty for later reuse.
type CreateBeneficiaryRequest struct {
	BeneficiaryName string `json:"beneficiaryName" binding:"required,max=100"`
	AccountNumber   string `json:"accountNumber" binding:"required,min=8,max=20"`
	Nickname        string `json:"nickname,omitempty" binding:"max=50"`
	IsFavorite      bool   `json:"isFavorite,omitempty"`
}
