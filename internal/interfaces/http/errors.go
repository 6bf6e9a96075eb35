package http

import "github.com/bonecole/appcore/internal/infrastructure/validate"

// RESTStandardError response error
type RESTStandardError struct {
	Type    string `json:"type,omitempty"`
	Code    int    `json:"code"`
	Title   string `json:"title"`
	Detail  string `json:"detail,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewRESTStandardError create a new standard error
func NewRESTStandardError(code int, title string) *RESTStandardError {
	return &RESTStandardError{
		Code:  code,
		Title: title,
	}
}

func (re *RESTStandardError) Error() string {
	return re.Title
}

// SetDetail set error detail
func (re *RESTStandardError) SetDetail(detail string) *RESTStandardError {
	re.Detail = detail
	return re
}

// SetTraceID set trace ID
func (re *RESTStandardError) SetTraceID(traceID string) *RESTStandardError {
	re.TraceID = traceID
	return re
}

// RESTValidationError standard validation error
type RESTValidationError struct {
	RESTStandardError
	InvalidParams []*validate.FieldError `json:"invalid_params"`
}

// NewRESTValidationError create a new validation error
func NewRESTValidationError(code int, title string, internal []*validate.FieldError) *RESTValidationError {
	return &RESTValidationError{
		RESTStandardError: RESTStandardError{
			Code:  code,
			Title: title,
		},
		InvalidParams: internal,
	}
}

func (rve *RESTValidationError) Error() string {
	return rve.Title
}

// SetTraceID set trace ID
func (rve *RESTValidationError) SetTraceID(traceID string) *RESTValidationError {
	rve.RESTStandardError.TraceID = traceID
	return rve
}
