package services

import "errors"

// ErrInvalidCredentials is returned for both unknown-email and wrong-password
// logins so callers cannot distinguish the two.
var ErrInvalidCredentials = errors.New("Invalid email or password")

// ValidationError marks bad or conflicting input; controllers map it to 400.
// The message is the API response message.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validation(msg string) error { return &ValidationError{Msg: msg} }

// NotFoundError marks a missing referenced entity; controllers map it to 404.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

func notFound(msg string) error { return &NotFoundError{Msg: msg} }

// DuplicateCityError carries the id of the already-existing city so the
// handler can return it alongside the conflict message.
type DuplicateCityError struct {
	CityID string
}

func (e *DuplicateCityError) Error() string { return "City already exists" }

// IsValidation reports whether err is a validation or conflict error.
func IsValidation(err error) bool {
	var ve *ValidationError
	var de *DuplicateCityError
	return errors.As(err, &ve) || errors.As(err, &de)
}

// IsNotFound reports whether err marks a missing entity.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
