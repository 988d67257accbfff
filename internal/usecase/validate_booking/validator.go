package validate_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	workpatternRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/workpattern"
	"github.com/m04kA/SMC-SalonService/pkg/calendar"
)

// Validator проверяет допустимость предлагаемой записи
type Validator struct {
	userRepo        UserRepository
	catalogRepo     CatalogRepository
	salonHours      SalonHoursProvider
	workPatternRepo WorkPatternRepository
	appointmentRepo AppointmentRepository
	timeProvider    TimeProvider
	location        *time.Location
	logger          Logger
}

// NewValidator создает новый валидатор записей
func NewValidator(
	userRepo UserRepository,
	catalogRepo CatalogRepository,
	salonHours SalonHoursProvider,
	workPatternRepo WorkPatternRepository,
	appointmentRepo AppointmentRepository,
	location *time.Location,
	logger Logger,
) *Validator {
	return &Validator{
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

// Validate выполняет проверки в фиксированном порядке.
// Ошибки правил (дата, роль, услуги, часы работы, график) собираются в domain.ErrorList целиком.
// Пересечение с другой записью проверяется последним и возвращается как domain.ConflictError.
func (v *Validator) Validate(ctx context.Context, in Input) (*Result, error) {
	if err := v.checkInput(in); err != nil {
		return nil, err
	}

	customer, err := v.getUser(ctx, in.CustomerID, domain.EntityCustomer)
	if err != nil {
		return nil, err
	}
	stylist, err := v.getUser(ctx, in.StylistID, domain.EntityStylist)
	if err != nil {
		return nil, err
	}
	if in.BookedByID != 0 && in.BookedByID != customer.ID {
		if _, err := v.getUser(ctx, in.BookedByID, domain.EntityUser); err != nil {
			return nil, err
		}
	}

	services, err := v.loadServices(ctx, in.Segments)
	if err != nil {
		return nil, err
	}

	var list domain.ErrorList
	result := &Result{}

	// 1. дата
	today := calendar.Today(v.timeProvider.Now(), v.location)
	date := calendar.DateOnly(in.Date)
	if !in.AllowPastDate && date.Before(today) {
		list.Add(&domain.ValidationError{Field: "date", Reason: "must not be in the past"})
	}

	// 2. стилист
	if !stylist.CanStyle() {
		list.Add(&domain.PolicyError{Kind: domain.PolicyNotStylist, Detail: fmt.Sprintf("user id=%d", stylist.ID)})
	}

	// 3. разрешённые услуги
	allowedErrs, err := v.checkAllowed(ctx, stylist.ID, in.Segments)
	if err != nil {
		return nil, err
	}
	list.Add(allowedErrs...)

	// 4. эффективная длительность сегментов
	timings, err := v.catalogRepo.ListTimings(ctx, stylist.ID)
	if err != nil {
		v.logger.Error("Validate: failed to load timings for stylist id=%d: %v", stylist.ID, err)
		return nil, fmt.Errorf("%w: Validate - list timings: %w", ErrInternal, err)
	}

	total := 0
	result.Segments = make([]domain.Segment, 0, len(in.Segments))
	for i, req := range in.Segments {
		svc := services[req.ServiceID]
		timing := domain.ResolveTiming(svc, timings[req.ServiceID], req.UseOverride)
		result.Segments = append(result.Segments, domain.Segment{
			ServiceID:       svc.ID,
			ServiceName:     svc.Name,
			Order:           i,
			DurationMinutes: timing.DurationMinutes,
			WaitingMinutes:  timing.WaitingMinutes,
			Price:           svc.Price,
		})
		total += timing.TotalMinutes()
	}

	// 5. время окончания
	end, err := in.StartTime.AddMinutes(total)
	if err != nil {
		list.Add(&domain.ValidationError{Field: "end_time", Reason: "appointment must end before midnight"})
		v.logger.Warn("Validate: stylist id=%d %s+%dmin crosses midnight", stylist.ID, in.StartTime, total)
		return nil, list.Err()
	}
	result.EndTime = end
	window := calendar.Window{Start: in.StartTime, End: end}

	// 6. часы работы салона
	warning, err := v.checkOpeningHours(ctx, date, window, in.Emergency)
	if err != nil {
		var policyErr *domain.PolicyError
		if !errors.As(err, &policyErr) {
			return nil, err
		}
		list.Add(err)
	}
	if warning != "" {
		result.Warnings = append(result.Warnings, warning)
	}

	// 7. рабочий график стилиста
	warning, err = v.checkWorkPattern(ctx, stylist.ID, date, window, in.OverrideWorkPattern)
	if err != nil {
		var policyErr *domain.PolicyError
		if !errors.As(err, &policyErr) {
			return nil, err
		}
		list.Add(err)
	}
	if warning != "" {
		result.Warnings = append(result.Warnings, warning)
	}

	if list.Len() > 0 {
		v.logger.Warn("Validate: stylist id=%d %s %s refused: %v", stylist.ID, date.Format(domain.DateFormat), window, list.Err())
		return nil, list.Err()
	}

	// 8. пересечения
	if err := v.checkOverlap(ctx, stylist.ID, date, window, in.ExcludeAppointmentID); err != nil {
		return nil, err
	}

	return result, nil
}

func (v *Validator) checkInput(in Input) error {
	var list domain.ErrorList
	if len(in.Segments) == 0 {
		list.Add(&domain.ValidationError{Field: "services", Reason: "at least one service is required"})
	}
	if len(in.Segments) > domain.MaxSegmentsPerBooking {
		list.Add(&domain.ValidationError{Field: "services", Reason: fmt.Sprintf("at most %d services per appointment", domain.MaxSegmentsPerBooking)})
	}
	if err := in.StartTime.Validate(); err != nil {
		list.Add(&domain.ValidationError{Field: "start_time", Reason: "must be HH:MM"})
	}
	if in.Date.IsZero() {
		list.Add(&domain.ValidationError{Field: "date", Reason: "required"})
	}
	return list.Err()
}

func (v *Validator) getUser(ctx context.Context, id int64, entity string) (*domain.User, error) {
	u, err := v.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			v.logger.Warn("Validate: %s id=%d not found", entity, id)
			return nil, &domain.MissingError{Entity: entity, ID: id}
		}
		v.logger.Error("Validate: failed to load %s id=%d: %v", entity, id, err)
		return nil, fmt.Errorf("%w: Validate - get %s: %w", ErrInternal, entity, err)
	}
	return u, nil
}

func (v *Validator) loadServices(ctx context.Context, segments []SegmentRequest) (map[int64]*domain.Service, error) {
	ids := make([]int64, 0, len(segments))
	for _, s := range segments {
		ids = append(ids, s.ServiceID)
	}

	services, err := v.catalogRepo.GetByIDs(ctx, ids)
	if err != nil {
		v.logger.Error("Validate: failed to load services %v: %v", ids, err)
		return nil, fmt.Errorf("%w: Validate - get services: %w", ErrInternal, err)
	}

	for _, id := range ids {
		if _, ok := services[id]; !ok {
			v.logger.Warn("Validate: service id=%d not found", id)
			return nil, &domain.MissingError{Entity: domain.EntityService, ID: id}
		}
	}
	return services, nil
}

func (v *Validator) checkAllowed(ctx context.Context, stylistID int64, segments []SegmentRequest) ([]error, error) {
	active, err := v.catalogRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: Validate - list active services: %w", ErrInternal, err)
	}
	allowances, err := v.catalogRepo.ListAllowances(ctx, stylistID)
	if err != nil {
		return nil, fmt.Errorf("%w: Validate - list allowances: %w", ErrInternal, err)
	}

	allowed := make(map[int64]bool)
	for _, s := range domain.AllowedServices(active, allowances) {
		allowed[s.ID] = true
	}

	var errs []error
	seen := make(map[int64]bool, len(segments))
	for _, s := range segments {
		if allowed[s.ServiceID] || seen[s.ServiceID] {
			continue
		}
		seen[s.ServiceID] = true
		errs = append(errs, &domain.PolicyError{
			Kind:   domain.PolicyServiceNotAllowed,
			Detail: fmt.Sprintf("service id=%d for stylist id=%d", s.ServiceID, stylistID),
		})
	}
	return errs, nil
}

// checkOpeningHours возвращает предупреждение, если запись принята по экстренному продлению
func (v *Validator) checkOpeningHours(ctx context.Context, date time.Time, window calendar.Window, emergency bool) (string, error) {
	hours, err := v.salonHours.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: Validate - salon hours: %w", ErrInternal, err)
	}

	bypass := hours.EmergencyExtensionEnabled && emergency

	opening, open := hours.OpeningFor(date)
	switch {
	case !open && bypass:
		return fmt.Sprintf("salon is closed on %s, booked as emergency extension", calendar.WeekdayKey(date)), nil
	case !open:
		return "", &domain.PolicyError{Kind: domain.PolicySalonClosed, Detail: calendar.WeekdayKey(date)}
	case opening.Contains(window):
		return "", nil
	case bypass:
		return fmt.Sprintf("%s is outside opening hours %s, booked as emergency extension", window, opening), nil
	}
	return "", &domain.PolicyError{Kind: domain.PolicyOutsideOpeningHours, Detail: fmt.Sprintf("%s not within %s", window, opening)}
}

// checkWorkPattern возвращает предупреждение, если выход за график разрешён вызывающим
func (v *Validator) checkWorkPattern(ctx context.Context, stylistID int64, date time.Time, window calendar.Window, override bool) (string, error) {
	pattern, err := v.workPatternRepo.GetActiveByUser(ctx, stylistID)
	if err != nil {
		if errors.Is(err, workpatternRepo.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("%w: Validate - work pattern: %w", ErrInternal, err)
	}

	working, ok := pattern.WindowFor(date)
	if ok && working.Contains(window) {
		return "", nil
	}

	detail := fmt.Sprintf("stylist id=%d does not work on %s", stylistID, calendar.WeekdayKey(date))
	if ok {
		detail = fmt.Sprintf("%s not within working hours %s", window, working)
	}
	if override {
		return detail + ", booked with work pattern override", nil
	}
	return "", &domain.PolicyError{Kind: domain.PolicyOutsideWorkPattern, Detail: detail}
}

func (v *Validator) checkOverlap(ctx context.Context, stylistID int64, date time.Time, window calendar.Window, excludeID int64) error {
	blocking, err := v.appointmentRepo.ListBlocking(ctx, stylistID, date, excludeID)
	if err != nil {
		v.logger.Error("Validate: failed to list appointments of stylist id=%d: %v", stylistID, err)
		return fmt.Errorf("%w: Validate - list blocking: %w", ErrInternal, err)
	}

	for _, a := range blocking {
		if a.ID == excludeID || !a.BlocksSlot() {
			continue
		}
		if a.Window().Overlaps(window) {
			v.logger.Warn("Validate: stylist id=%d %s overlaps appointment id=%d %s", stylistID, window, a.ID, a.Window())
			return &domain.ConflictError{Resource: domain.EntityStylist, Window: window.String()}
		}
	}
	return nil
}
