package httperr

import "errors"

// Kind classifies a BusinessError for the HTTP boundary.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnauthenticated
	KindForbidden
	KindAccessDenied
	KindNotFound
	KindSlotConflict
	KindConflict
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

// Is matches on Code so wrapped copies compare equal to the sentinel.
func (e BusinessError) Is(target error) bool {
	var be BusinessError
	if errors.As(target, &be) {
		return be.Code == e.Code
	}
	return false
}

func ErrBusiness(kind Kind, code, message string) error {
	return BusinessError{Kind: kind, Code: code, Message: message}
}

func Validation(code, message string) error {
	return ErrBusiness(KindValidation, code, message)
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func KindOf(err error) (Kind, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return 0, false
}
