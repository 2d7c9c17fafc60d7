package rest

import "newscout/domain"

// ResponseHeader carries the API status flag: "1" for success, "0" for
// failure. Clients key off this flag before reading the body.
type ResponseHeader struct {
	Status string `json:"status"`
}

// SuccessResponse wraps any payload in the success envelope.
type SuccessResponse struct {
	Header ResponseHeader `json:"header"`
	Body   any            `json:"body"`
}

// ErrorBody lists the per-field errors of a failed request.
type ErrorBody struct {
	ErrorList []domain.FieldError `json:"errorList"`
}

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	Header ResponseHeader `json:"header"`
	Errors ErrorBody      `json:"errors"`
}

func successEnvelope(body any) SuccessResponse {
	return SuccessResponse{
		Header: ResponseHeader{Status: "1"},
		Body:   body,
	}
}

func errorEnvelope(fields []domain.FieldError) ErrorResponse {
	return ErrorResponse{
		Header: ResponseHeader{Status: "0"},
		Errors: ErrorBody{ErrorList: fields},
	}
}
