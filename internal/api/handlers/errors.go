package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

const (
	msgValidationFailed = "запрос не прошёл проверку"
	msgConflict         = "конфликт с существующими данными"
	msgStateConflict    = "недопустимый переход состояния"
	msgNotFound         = "объект не найден"
	msgForbidden        = "действие запрещено"
)

// ErrorDetail одна ошибка предметной области в ответе
type ErrorDetail struct {
	Kind     string `json:"kind"`
	Code     string `json:"code,omitempty"`
	Field    string `json:"field,omitempty"`
	Resource string `json:"resource,omitempty"`
	Window   string `json:"window,omitempty"`
	Entity   string `json:"entity,omitempty"`
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
	ID       int64  `json:"id,omitempty"`
	Message  string `json:"message"`
}

// RespondDomainError переводит ошибку предметной области в HTTP-ответ.
// Validation/Policy и списки ошибок: 422 с полным списком, Conflict/State: 409,
// Missing: 404, отказ по правам без других ошибок: 403, остальное: 500.
// Возвращает false, если err не является ошибкой предметной области и ответ 500 уже записан.
func RespondDomainError(w http.ResponseWriter, err error) bool {
	kind := domain.ErrorKind(err)
	switch kind {
	case domain.KindValidation, domain.KindPolicy:
		details := collectDetails(err)
		if len(details) == 1 && details[0].Code == domain.PolicyForbiddenActor {
			RespondJSON(w, http.StatusForbidden, ErrorResponse{Error: msgForbidden, Details: details})
			return true
		}
		RespondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: msgValidationFailed, Details: details})
	case domain.KindConflict:
		RespondJSON(w, http.StatusConflict, ErrorResponse{Error: msgConflict, Details: collectDetails(err)})
	case domain.KindState:
		RespondJSON(w, http.StatusConflict, ErrorResponse{Error: msgStateConflict, Details: collectDetails(err)})
	case domain.KindMissing:
		RespondJSON(w, http.StatusNotFound, ErrorResponse{Error: msgNotFound, Details: collectDetails(err)})
	default:
		RespondInternalError(w)
		return false
	}
	return true
}

func collectDetails(err error) []ErrorDetail {
	var list *domain.ErrorList
	if errors.As(err, &list) {
		details := make([]ErrorDetail, 0, len(list.Errors))
		for _, e := range list.Errors {
			details = append(details, detailOf(e))
		}
		return details
	}
	return []ErrorDetail{detailOf(err)}
}

func detailOf(err error) ErrorDetail {
	var (
		validationErr *domain.ValidationError
		policyErr     *domain.PolicyError
		conflictErr   *domain.ConflictError
		stateErr      *domain.StateError
		missingErr    *domain.MissingError
	)
	d := ErrorDetail{Kind: domain.ErrorKind(err), Message: err.Error()}
	switch {
	case errors.As(err, &validationErr):
		d.Field = validationErr.Field
		d.Message = validationErr.Reason
	case errors.As(err, &policyErr):
		d.Code = policyErr.Kind
		if policyErr.Detail != "" {
			d.Message = policyErr.Detail
		}
	case errors.As(err, &conflictErr):
		d.Resource = conflictErr.Resource
		d.Window = conflictErr.Window
	case errors.As(err, &stateErr):
		d.Entity = stateErr.Entity
		d.From = stateErr.From
		d.To = stateErr.To
	case errors.As(err, &missingErr):
		d.Entity = missingErr.Entity
		d.ID = missingErr.ID
	}
	return d
}
