package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type fakeUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/stylists/{stylistId}/available-slots", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_Slots(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		StylistID:       2,
		Date:            time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 105,
		Slots:           []getAvailableSlots.Slot{{StartTime: "09:00", EndTime: "10:45"}},
	}}

	rec := serve(uc, "/api/v1/stylists/2/available-slots?date=2026-10-19&service_id=10&service_id=11&use_override=true&step=30")
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, int64(2), uc.got.StylistID)
	assert.Equal(t, 30, uc.got.StepMinutes)
	require.Len(t, uc.got.Segments, 2)
	assert.Equal(t, int64(10), uc.got.Segments[0].ServiceID)
	assert.Equal(t, int64(11), uc.got.Segments[1].ServiceID)
	assert.True(t, uc.got.Segments[1].UseOverride)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2026-10-19", body.Date)
	assert.Equal(t, 105, body.DurationMinutes)
	assert.Equal(t, []SlotResponse{{StartTime: "09:00", EndTime: "10:45"}}, body.Slots)
}

func TestHandle_BadInput(t *testing.T) {
	targets := map[string]string{
		"stylist":  "/api/v1/stylists/abc/available-slots?date=2026-10-19&service_id=10",
		"service":  "/api/v1/stylists/2/available-slots?date=2026-10-19",
		"date":     "/api/v1/stylists/2/available-slots?date=19.10.2026&service_id=10",
		"step":     "/api/v1/stylists/2/available-slots?date=2026-10-19&service_id=10&step=x",
		"override": "/api/v1/stylists/2/available-slots?date=2026-10-19&service_id=10&use_override=maybe",
	}

	for name, target := range targets {
		t.Run(name, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec := serve(uc, target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_DomainErrors(t *testing.T) {
	uc := &fakeUseCase{err: &domain.MissingError{Entity: domain.EntityStylist, ID: 2}}
	rec := serve(uc, "/api/v1/stylists/2/available-slots?date=2026-10-19&service_id=10")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	uc = &fakeUseCase{err: &domain.PolicyError{Kind: domain.PolicyNotStylist}}
	rec = serve(uc, "/api/v1/stylists/2/available-slots?date=2026-10-19&service_id=10")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
