package domain

// FieldError is one entry of the structured field-error list surfaced to
// API clients on validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"field_error"`
}

// ValidationError carries one or more field errors. It is reported
// synchronously to the caller and never propagates as an internal fault.
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation error"
	}
	return e.Fields[0].Field + ": " + e.Fields[0].Message
}

// NotFoundError signals a missing resource, mapped to a 404-class
// response at the boundary.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// RepositoryError represents an error from the repository layer.
type RepositoryError struct {
	Op  string
	Err string
}

func (e *RepositoryError) Error() string {
	return e.Op + ": " + e.Err
}

// SearchEngineError represents an error from the search engine layer.
type SearchEngineError struct {
	Op  string
	Err string
}

func (e *SearchEngineError) Error() string {
	return e.Op + ": " + e.Err
}

// DriverError represents an error from the driver layer.
type DriverError struct {
	Op  string
	Err string
}

func (e *DriverError) Error() string {
	return e.Op + ": " + e.Err
}
