package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

func TestRespondDomainError_Statuses(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		handled bool
	}{
		{"validation", &domain.ValidationError{Field: "date", Reason: "in the past"}, http.StatusUnprocessableEntity, true},
		{"policy", &domain.PolicyError{Kind: domain.PolicyOutsideOpeningHours}, http.StatusUnprocessableEntity, true},
		{"forbidden", &domain.PolicyError{Kind: domain.PolicyForbiddenActor}, http.StatusForbidden, true},
		{"conflict", &domain.ConflictError{Resource: domain.EntityStylist, Window: "10:30-11:00"}, http.StatusConflict, true},
		{"state", &domain.StateError{Entity: domain.EntityAppointment, From: "cancelled", To: "completed"}, http.StatusConflict, true},
		{"missing", &domain.MissingError{Entity: domain.EntityService, ID: 7}, http.StatusNotFound, true},
		{"internal", errors.New("boom"), http.StatusInternalServerError, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handled := RespondDomainError(rec, tc.err)
			assert.Equal(t, tc.handled, handled)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestRespondDomainError_ListCarriesEveryDetail(t *testing.T) {
	var list domain.ErrorList
	list.Add(
		&domain.ValidationError{Field: "date", Reason: "in the past"},
		&domain.PolicyError{Kind: domain.PolicyNotStylist},
		&domain.PolicyError{Kind: domain.PolicyForbiddenActor},
	)

	rec := httptest.NewRecorder()
	require.True(t, RespondDomainError(rec, list.Err()))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Details, 3)
	assert.Equal(t, "date", body.Details[0].Field)
	assert.Equal(t, domain.KindValidation, body.Details[0].Kind)
	assert.Equal(t, domain.PolicyNotStylist, body.Details[1].Code)
	assert.Equal(t, domain.PolicyForbiddenActor, body.Details[2].Code)
}

func TestRespondDomainError_ConflictDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondDomainError(rec, &domain.ConflictError{Resource: domain.EntityStylist, Window: "10:30-11:00"})

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Details, 1)
	assert.Equal(t, domain.KindConflict, body.Details[0].Kind)
	assert.Equal(t, "10:30-11:00", body.Details[0].Window)
	assert.Equal(t, domain.EntityStylist, body.Details[0].Resource)
}
