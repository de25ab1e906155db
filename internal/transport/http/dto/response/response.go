package response

type Response struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WithDetails возвращает копию ошибки с другими деталями.
func (e ErrorResponse) WithDetails(details string) ErrorResponse {
	e.Details = details
	return e
}

func StatusOK() Response {
	return Response{Status: "ok"}
}

func ErrorResponseWithDetails(err, details string) ErrorResponse {
	return ErrorResponse{
		Status:  "error",
		Error:   err,
		Details: details,
	}
}
