package utils

// MaskAccountNumber hides the tail of an account number for display.
func MaskAccountNumber(accountNumber string) string {
	if len(accountNumber) < 8 {
		return "****"
	}
	return accountNumber[:8] + " ****"
}

// MaskCardNumber renders a card number from its last four digits.
func MaskCardNumber(last4 string) string {
	return "**** **** **** " + last4
}
