package response

const (
	CodeInvalidGiftNumber = "invalid_gift_number"
	CodeGiftNotFound      = "gift_not_found"
	CodeStoreUnavailable  = "store_unavailable"
)

var (
	ErrInvalidGiftNumber = ErrorResponse{
		Status:  "error",
		Error:   CodeInvalidGiftNumber,
		Details: "gift_number must be an integer in range",
	}

	ErrGiftNotFound = ErrorResponse{
		Status:  "error",
		Error:   CodeGiftNotFound,
		Details: "Gift does not exist",
	}

	ErrStoreUnavailable = ErrorResponse{
		Status:  "error",
		Error:   CodeStoreUnavailable,
		Details: "Gift store is unavailable, try again",
	}
)
