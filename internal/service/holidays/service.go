package holidays

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	holidayRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/holiday"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	workPatternRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/workpattern"
	"github.com/m04kA/SMC-SalonService/pkg/calendar"
)

// Service движок отпусков: квоты, заявки и решения по ним
type Service struct {
	repo         Repository
	patternRepo  WorkPatternRepository
	userRepo     UserRepository
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	policy       Policy
	logger       Logger
}

// NewService создает новый экземпляр движка
func NewService(
	repo Repository,
	patternRepo WorkPatternRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	metrics Metrics,
	policy Policy,
	logger Logger,
) *Service {
	return &Service{
		repo:         repo,
		patternRepo:  patternRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		policy:       policy,
		logger:       logger,
	}
}

// Entitlement возвращает количество дней отпуска по текущему активному графику
func (s *Service) Entitlement(ctx context.Context, userID int64) (decimal.Decimal, error) {
	weekly, err := s.weeklyHours(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return domain.Entitlement(weekly, s.policy.FullTimeWeeklyHours, s.policy.StatutoryDays), nil
}

func (s *Service) weeklyHours(ctx context.Context, userID int64) (decimal.Decimal, error) {
	p, err := s.patternRepo.GetActiveByUser(ctx, userID)
	if errors.Is(err, workPatternRepo.ErrNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		s.logger.Error("weeklyHours: failed to get work pattern for user=%d: %v", userID, err)
		return decimal.Zero, fmt.Errorf("%w: weeklyHours - get work pattern: %w", ErrInternal, err)
	}
	return p.WeeklyHours(), nil
}

// Quota возвращает квоту пользователя за год, создавая её при первом обращении
func (s *Service) Quota(ctx context.Context, userID int64, year int) (*domain.HolidayQuota, error) {
	var quota *domain.HolidayQuota
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		quota, _, err = s.quota(txCtx, userID, year)
		return err
	})
	if err != nil {
		return nil, err
	}
	return quota, nil
}

// quota получает квоту (внутри транзакции с блокировкой строки) или создаёт её
// по текущим часам в неделю. Второе значение сообщает, была ли квота создана.
func (s *Service) quota(ctx context.Context, userID int64, year int) (*domain.HolidayQuota, bool, error) {
	q, err := s.repo.GetQuota(ctx, userID, year)
	if err == nil {
		return q, false, nil
	}
	if !errors.Is(err, holidayRepo.ErrQuotaNotFound) {
		s.logger.Error("quota: failed to get quota user=%d, year=%d: %v", userID, year, err)
		return nil, false, fmt.Errorf("%w: quota - get quota: %w", ErrInternal, err)
	}

	weekly, err := s.weeklyHours(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	q = &domain.HolidayQuota{
		UserID:            userID,
		Year:              year,
		TotalHoursPerWeek: weekly,
		DaysEntitled:      domain.Entitlement(weekly, s.policy.FullTimeWeeklyHours, s.policy.StatutoryDays),
		DaysTaken:         decimal.Zero,
	}

	err = s.repo.CreateQuota(ctx, q)
	if errors.Is(err, holidayRepo.ErrQuotaExists) {
		existing, err := s.repo.GetQuota(ctx, userID, year)
		if err != nil {
			return nil, false, fmt.Errorf("%w: quota - reload quota: %w", ErrInternal, err)
		}
		return existing, false, nil
	}
	if err != nil {
		s.logger.Error("quota: failed to create quota user=%d, year=%d: %v", userID, year, err)
		return nil, false, fmt.Errorf("%w: quota - create quota: %w", ErrInternal, err)
	}

	s.logger.Info("quota: created quota user=%d, year=%d, weekly=%s, entitled=%s", userID, year, weekly, q.DaysEntitled)
	return q, true, nil
}

// Submit создаёт заявку в статусе pending. Ошибки проверки возвращаются списком.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*domain.HolidayRequest, error) {
	from, to := calendar.DateOnly(req.From), calendar.DateOnly(req.To)
	s.logger.Info("Submit: user=%d, period=%s..%s", req.UserID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	if len(req.Notes) > domain.MaxNotesLength {
		return nil, &domain.ValidationError{Field: "notes", Reason: "too long"}
	}
	if err := s.ensureUser(ctx, req.UserID); err != nil {
		return nil, err
	}

	today := calendar.Today(s.timeProvider.Now(), s.policy.Location)

	var created *domain.HolidayRequest
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var list domain.ErrorList

		if to.Before(from) {
			list.Add(&domain.ValidationError{Field: "to", Reason: "must not be before from"})
		}
		if from.Before(today) {
			list.Add(&domain.ValidationError{Field: "from", Reason: "must not be in the past"})
		}
		if to.Before(from) {
			return list.Err()
		}

		workingDays := calendar.WorkingDays(from, to)
		if workingDays == 0 {
			list.Add(&domain.PolicyError{Kind: domain.PolicyNoWorkingDays, Detail: "period contains no working days"})
		}

		quota, _, err := s.quota(txCtx, req.UserID, from.Year())
		if err != nil {
			return err
		}
		if quota.DaysRemaining().LessThan(decimal.NewFromInt(int64(workingDays))) {
			list.Add(&domain.PolicyError{
				Kind:   domain.PolicyInsufficientQuota,
				Detail: fmt.Sprintf("%d working days requested, %s remaining", workingDays, quota.DaysRemaining()),
			})
		}

		blocking, err := s.repo.ListBlocking(txCtx, req.UserID, from, to)
		if err != nil {
			s.logger.Error("Submit: failed to list requests for user=%d: %v", req.UserID, err)
			return fmt.Errorf("%w: Submit - list requests: %w", ErrInternal, err)
		}
		if len(blocking) > 0 {
			list.Add(overlapError(blocking[0]))
		}

		if err := list.Err(); err != nil {
			return err
		}

		hr := &domain.HolidayRequest{
			UserID:      req.UserID,
			StartDate:   from,
			EndDate:     to,
			WorkingDays: workingDays,
			Status:      domain.HolidayPending,
			Notes:       req.Notes,
		}
		if err := s.repo.CreateRequest(txCtx, hr); err != nil {
			if errors.Is(err, holidayRepo.ErrRequestOverlap) {
				return &domain.ErrorList{Errors: []error{&domain.PolicyError{Kind: domain.PolicyHolidayOverlap}}}
			}
			s.logger.Error("Submit: failed to create request for user=%d: %v", req.UserID, err)
			return fmt.Errorf("%w: Submit - create request: %w", ErrInternal, err)
		}
		created = hr
		return nil
	})
	if err != nil {
		s.logger.Warn("Submit: rejected for user=%d: %v", req.UserID, err)
		return nil, err
	}

	s.logger.Info("Submit: request id=%d created, working days=%d", created.ID, created.WorkingDays)
	return created, nil
}

func overlapError(existing *domain.HolidayRequest) error {
	return &domain.PolicyError{
		Kind: domain.PolicyHolidayOverlap,
		Detail: fmt.Sprintf("overlaps %s request %s..%s", existing.Status,
			existing.StartDate.Format(domain.DateFormat), existing.EndDate.Format(domain.DateFormat)),
	}
}

// Decide одобряет или отклоняет заявку в статусе pending.
// Одобрение списывает рабочие дни с квоты года начала отпуска.
func (s *Service) Decide(ctx context.Context, req DecideRequest) error {
	s.logger.Info("Decide: request id=%d, actor=%d, decision=%s", req.RequestID, req.ActorID, req.Decision)

	var target domain.HolidayStatus
	switch req.Decision {
	case domain.DecisionApprove:
		target = domain.HolidayApproved
	case domain.DecisionReject:
		target = domain.HolidayRejected
	default:
		return &domain.ValidationError{Field: "decision", Reason: "must be approve or reject"}
	}

	actor, err := s.getUser(ctx, req.ActorID)
	if err != nil {
		return err
	}
	if !actor.IsManagement() {
		s.logger.Warn("Decide: actor=%d is not a manager", req.ActorID)
		return &domain.PolicyError{Kind: domain.PolicyForbiddenActor, Detail: "only managers decide holiday requests"}
	}

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		hr, err := s.repo.GetRequest(txCtx, req.RequestID)
		if err != nil {
			if errors.Is(err, holidayRepo.ErrRequestNotFound) {
				return &domain.MissingError{Entity: domain.EntityHolidayRequest, ID: req.RequestID}
			}
			return fmt.Errorf("%w: Decide - get request: %w", ErrInternal, err)
		}

		if hr.Status != domain.HolidayPending {
			return &domain.StateError{Entity: domain.EntityHolidayRequest, From: string(hr.Status), To: string(target)}
		}
		if hr.UserID == req.ActorID {
			return &domain.PolicyError{Kind: domain.PolicyForbiddenActor, Detail: "cannot decide own request"}
		}

		if target == domain.HolidayApproved {
			quota, _, err := s.quota(txCtx, hr.UserID, hr.QuotaYear())
			if err != nil {
				return err
			}
			days := decimal.NewFromInt(int64(hr.WorkingDays))
			if quota.DaysRemaining().LessThan(days) {
				return &domain.PolicyError{
					Kind:   domain.PolicyInsufficientQuota,
					Detail: fmt.Sprintf("%d working days requested, %s remaining", hr.WorkingDays, quota.DaysRemaining()),
				}
			}
			quota.DaysTaken = quota.DaysTaken.Add(days)
			if err := s.repo.UpdateQuotaTaken(txCtx, quota); err != nil {
				return fmt.Errorf("%w: Decide - update quota: %w", ErrInternal, err)
			}
		}

		now := s.timeProvider.Now()
		actorID := req.ActorID
		hr.Status = target
		hr.DecisionNotes = req.Notes
		hr.ApprovedBy = &actorID
		hr.DecidedAt = &now
		if err := s.repo.UpdateDecision(txCtx, hr); err != nil {
			return fmt.Errorf("%w: Decide - update request: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("Decide: request id=%d: %v", req.RequestID, err)
		} else {
			s.logger.Warn("Decide: request id=%d refused: %v", req.RequestID, err)
		}
		return err
	}

	s.metrics.HolidayDecision(string(req.Decision))
	s.logger.Info("Decide: request id=%d is now %s", req.RequestID, target)
	return nil
}

// ListRequests возвращает заявки пользователя, начинающиеся в указанном году
func (s *Service) ListRequests(ctx context.Context, userID int64, year int) ([]*domain.HolidayRequest, error) {
	var requests []*domain.HolidayRequest
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		requests, err = s.repo.ListByUserYear(txCtx, userID, year)
		return err
	})
	if err != nil {
		s.logger.Error("ListRequests: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListRequests - repository error: %w", ErrInternal, err)
	}
	return requests, nil
}

// EnsureQuotas создаёт квоты на год всем пользователям с активным графиком.
// Возвращает количество созданных квот.
func (s *Service) EnsureQuotas(ctx context.Context, year int) (int, error) {
	patterns, err := s.patternRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("EnsureQuotas: failed to list work patterns: %v", err)
		return 0, fmt.Errorf("%w: EnsureQuotas - list work patterns: %w", ErrInternal, err)
	}

	created := 0
	var errs []error
	for _, p := range patterns {
		var isNew bool
		err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			var err error
			_, isNew, err = s.quota(txCtx, p.UserID, year)
			return err
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("user=%d: %w", p.UserID, err))
			continue
		}
		if isNew {
			created++
		}
	}

	s.logger.Info("EnsureQuotas: year=%d, %d quotas created for %d users", year, created, len(patterns))
	return created, errors.Join(errs...)
}

func (s *Service) ensureUser(ctx context.Context, id int64) error {
	_, err := s.getUser(ctx, id)
	return err
}

func (s *Service) getUser(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, &domain.MissingError{Entity: domain.EntityUser, ID: id}
		}
		s.logger.Error("getUser: repository error for user=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getUser - repository error: %w", ErrInternal, err)
	}
	return u, nil
}
