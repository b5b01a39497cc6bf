package usecase

// DomainError is a business-rule rejection: the caller did something the
// pipeline does not allow (validation failure, unknown lead). Handlers map
// these to 4xx responses.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError is an infrastructure failure (database, broker). The
// triggering action can be retried as-is.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}
