package quadratic

import "errors"

var (
	ErrNotANumber            = errors.New("not a number")
	ErrInsufficientPrecision = errors.New("insufficient precision")
	ErrInvalidState          = errors.New("invalid state: q is zero while c is not")
	ErrNotQuadratic          = errors.New("coefficient a must not be zero")
)

// Коды ошибок, которые передаются клиентам по HTTP и gRPC
const (
	KindNotANumber            = "NOT_A_NUMBER"
	KindInsufficientPrecision = "INSUFFICIENT_PRECISION"
	KindInvalidState          = "INVALID_STATE"
	KindNotQuadratic          = "NOT_QUADRATIC"
	KindInternal              = "INTERNAL"
)

// ErrorKind возвращает код ошибки для передачи по сети.
// Для nil возвращается пустая строка.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotANumber):
		return KindNotANumber
	case errors.Is(err, ErrInsufficientPrecision):
		return KindInsufficientPrecision
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrNotQuadratic):
		return KindNotQuadratic
	default:
		return KindInternal
	}
}

// KindError восстанавливает ошибку по коду, полученному от агента.
func KindError(kind string) error {
	switch kind {
	case "":
		return nil
	case KindNotANumber:
		return ErrNotANumber
	case KindInsufficientPrecision:
		return ErrInsufficientPrecision
	case KindInvalidState:
		return ErrInvalidState
	case KindNotQuadratic:
		return ErrNotQuadratic
	default:
		return errors.New("internal error")
	}
}
