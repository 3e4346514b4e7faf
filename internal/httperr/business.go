package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ===============================
// Códigos de negócio
// ===============================

const (
	CodeSlotConflict        = "slot_conflict"
	CodeOutsideWorkingHours = "outside_working_hours"
	CodeServiceInactive     = "service_inactive"
	CodeBarberInactive      = "barber_inactive"
	CodeInvalidState        = "invalid_state"
	CodePaymentRequired     = "payment_required"
	CodeNotFound            = "not_found"
	CodeBusy                = "busy"
	CodeInvalidRequest      = "invalid_request"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func BusinessCode(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}

// statusFor mapeia código de negócio → status HTTP
// conflito→409, transição inválida→422, not found→404, busy→503
func statusFor(code string) int {
	switch code {
	case CodeSlotConflict:
		return http.StatusConflict
	case CodeInvalidState, CodePaymentRequired:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	case CodeBusy:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}

// WriteBusiness escreve um erro de negócio com o status adequado;
// retorna false se err não é um BusinessError
func WriteBusiness(c *gin.Context, err error, message string) bool {
	code, ok := BusinessCode(err)
	if !ok {
		return false
	}
	Write(c, statusFor(code), code, message)
	return true
}
