package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	workpatternRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/workpattern"
	"github.com/m04kA/SMC-SalonService/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-SalonService/pkg/calendar"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// UseCase use case поиска свободных интервалов стилиста на дату.
// Учитывает часы работы салона, график стилиста и существующие записи; экстренное
// продление и обход графика не применяются.
type UseCase struct {
	userRepo        UserRepository
	catalogRepo     CatalogRepository
	salonHours      SalonHoursProvider
	workPatternRepo WorkPatternRepository
	appointmentRepo AppointmentRepository
	timeProvider    TimeProvider
	location        *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	userRepo UserRepository,
	catalogRepo CatalogRepository,
	salonHours SalonHoursProvider,
	workPatternRepo WorkPatternRepository,
	appointmentRepo AppointmentRepository,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		userRepo:        userRepo,
		catalogRepo:     catalogRepo,
		salonHours:      salonHours,
		workPatternRepo: workPatternRepo,
		appointmentRepo: appointmentRepo,
		timeProvider:    &RealTimeProvider{},
		location:        location,
		logger:          logger,
	}
}

// Execute выполняет use case получения свободных интервалов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: stylist=%d, date=%s, services=%d",
		req.StylistID, req.Date.Format(domain.DateFormat), len(req.Segments))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}
	step := req.StepMinutes
	if step == 0 {
		step = DefaultStepMinutes
	}

	date := calendar.DateOnly(req.Date)
	resp := &Response{StylistID: req.StylistID, Date: date, Slots: []Slot{}}

	// 2. Стилист
	stylist, err := uc.userRepo.GetByID(ctx, req.StylistID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, &domain.MissingError{Entity: domain.EntityStylist, ID: req.StylistID}
		}
		uc.logger.Error("GetAvailableSlots: failed to get stylist id=%d: %v", req.StylistID, err)
		return nil, fmt.Errorf("%w: Execute - get stylist: %w", ErrInternal, err)
	}
	if !stylist.CanStyle() {
		return nil, &domain.PolicyError{Kind: domain.PolicyNotStylist, Detail: fmt.Sprintf("user id=%d", stylist.ID)}
	}

	// 3. Длительность записи по эффективным таймингам стилиста
	duration, err := uc.totalMinutes(ctx, stylist.ID, req.Segments)
	if err != nil {
		return nil, err
	}
	resp.DurationMinutes = duration

	// 4. Прошедшая дата - свободных интервалов нет
	now := uc.timeProvider.Now().In(uc.location)
	today := calendar.Today(now, uc.location)
	if date.Before(today) {
		return resp, nil
	}
	var notBefore types.TimeString
	if date.Equal(today) {
		notBefore = types.NewTimeString(now)
	}

	// 5. Окно: часы работы салона ∩ график стилиста
	window, ok, err := uc.workingWindow(ctx, stylist.ID, date)
	if err != nil {
		return nil, err
	}
	if !ok {
		uc.logger.Info("GetAvailableSlots: stylist=%d is not available on %s", stylist.ID, date.Format(domain.DateFormat))
		return resp, nil
	}

	// 6. Существующие записи
	blocking, err := uc.appointmentRepo.ListBlocking(ctx, stylist.ID, date, 0)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list appointments of stylist id=%d: %v", stylist.ID, err)
		return nil, fmt.Errorf("%w: Execute - list blocking: %w", ErrInternal, err)
	}

	resp.Slots = generateSlots(window, duration, step, notBefore, blocking)

	uc.logger.Info("GetAvailableSlots: generated %d slots for stylist=%d, date=%s, window=%s, duration=%d",
		len(resp.Slots), stylist.ID, date.Format(domain.DateFormat), window, duration)
	return resp, nil
}

func validateRequest(req *Request) error {
	var list domain.ErrorList
	if req.StylistID <= 0 {
		list.Add(&domain.ValidationError{Field: "stylist_id", Reason: "must be positive"})
	}
	if req.Date.IsZero() {
		list.Add(&domain.ValidationError{Field: "date", Reason: "required"})
	}
	if len(req.Segments) == 0 || len(req.Segments) > domain.MaxSegmentsPerBooking {
		list.Add(&domain.ValidationError{Field: "services", Reason: fmt.Sprintf("between 1 and %d services", domain.MaxSegmentsPerBooking)})
	}
	if req.StepMinutes != 0 && (req.StepMinutes < MinStepMinutes || req.StepMinutes > MaxStepMinutes) {
		list.Add(&domain.ValidationError{Field: "step", Reason: fmt.Sprintf("must be between %d and %d minutes", MinStepMinutes, MaxStepMinutes)})
	}
	return list.Err()
}

func (uc *UseCase) totalMinutes(ctx context.Context, stylistID int64, segments []validate_booking.SegmentRequest) (int, error) {
	ids := make([]int64, 0, len(segments))
	for _, s := range segments {
		ids = append(ids, s.ServiceID)
	}

	services, err := uc.catalogRepo.GetByIDs(ctx, ids)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load services %v: %v", ids, err)
		return 0, fmt.Errorf("%w: Execute - get services: %w", ErrInternal, err)
	}
	timings, err := uc.catalogRepo.ListTimings(ctx, stylistID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load timings for stylist id=%d: %v", stylistID, err)
		return 0, fmt.Errorf("%w: Execute - list timings: %w", ErrInternal, err)
	}

	total := 0
	for _, s := range segments {
		svc, ok := services[s.ServiceID]
		if !ok {
			return 0, &domain.MissingError{Entity: domain.EntityService, ID: s.ServiceID}
		}
		total += domain.ResolveTiming(svc, timings[s.ServiceID], s.UseOverride).TotalMinutes()
	}
	return total, nil
}

// workingWindow возвращает окно, в котором стилист принимает записи на дату
func (uc *UseCase) workingWindow(ctx context.Context, stylistID int64, date time.Time) (calendar.Window, bool, error) {
	hours, err := uc.salonHours.Get(ctx)
	if err != nil {
		return calendar.Window{}, false, fmt.Errorf("%w: Execute - salon hours: %w", ErrInternal, err)
	}
	window, open := hours.OpeningFor(date)
	if !open {
		return calendar.Window{}, false, nil
	}

	pattern, err := uc.workPatternRepo.GetActiveByUser(ctx, stylistID)
	switch {
	case errors.Is(err, workpatternRepo.ErrNotFound):
		return window, true, nil
	case err != nil:
		uc.logger.Error("GetAvailableSlots: failed to get work pattern of stylist id=%d: %v", stylistID, err)
		return calendar.Window{}, false, fmt.Errorf("%w: Execute - work pattern: %w", ErrInternal, err)
	}

	working, ok := pattern.WindowFor(date)
	if !ok {
		return calendar.Window{}, false, nil
	}
	w, ok := intersect(window, working)
	return w, ok, nil
}
