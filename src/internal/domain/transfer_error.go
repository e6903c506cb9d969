package domain

const (
	ErrCodeInvalidAmount           = "INVALID_AMOUNT"
	ErrCodeExceedsTransactionLimit = "EXCEEDS_TRANSACTION_LIMIT"
	ErrCodeExceedsDailyLimit       = "EXCEEDS_DAILY_LIMIT"
	ErrCodeExceedsMonthlyLimit     = "EXCEEDS_MONTHLY_LIMIT"
	ErrCodeTwoFactorRequired       = "2FA_REQUIRED"
	ErrCodeTwoFactorFailed         = "2FA_FAILED"
	ErrCodeTransferFailed          = "TRANSFER_FAILED"
	ErrCodeUnexpected              = "UNEXPECTED_ERROR"
)

type TransferError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"`
	Retryable bool   `json:"retryable"`
}

func (e TransferError) Error() string {
	return e.Code + ": " + e.Message
}
