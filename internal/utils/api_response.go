package utils

import "time"

// Envelope is the uniform JSON wrapper every endpoint returns. Success
// responses carry the payload plus a served-at timestamp; error responses
// carry a machine-readable code and a human message.
type Envelope struct {
	Success  bool       `json:"success"`
	Data     any        `json:"data,omitempty"`
	Error    *ErrorBody `json:"error,omitempty"`
	ServedAt *time.Time `json:"served_at,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func CreateSuccessResponse(data any) Envelope {
	now := time.Now()
	return Envelope{
		Success:  true,
		Data:     data,
		ServedAt: &now,
	}
}

func CreateErrorResponse(code, message string) Envelope {
	return Envelope{
		Success: false,
		Error:   &ErrorBody{Code: code, Message: message},
	}
}
