package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	availabilitystorage "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/availability"
	eventtypestorage "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/eventtype"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/tzconv"
)

// UseCase usecase получения доступных слотов для типа события
type UseCase struct {
	bookingRepo   BookingRepository
	eventTypeRepo EventTypeRepository
	profileRepo   ProfileRepository
	txManager     TxManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый usecase для получения доступных слотов
func NewUseCase(
	bookingRepo BookingRepository,
	eventTypeRepo EventTypeRepository,
	profileRepo ProfileRepository,
	txManager TxManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		eventTypeRepo: eventTypeRepo,
		profileRepo:   profileRepo,
		txManager:     txManager,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// Execute возвращает доступные слоты типа события в диапазоне календарных дат.
//
// Пайплайн: валидация -> загрузка типа события и профиля -> ограничение
// диапазона горизонтом -> генерация кандидатов из правил -> фильтрация по
// существующим бронированиям. Результат детерминирован для фиксированных
// входных данных и момента "сейчас".
//
// Чтения типа события, профиля и бронирований выполняются в одной read-only
// транзакции ради консистентного снимка. Внутри транзакции создания
// бронирования чтения присоединяются к ней через executor из context
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if dbmetrics.IsInTransaction(ctx) {
		return uc.execute(ctx, req)
	}

	var response *Response
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		response, err = uc.execute(txCtx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

func (uc *UseCase) execute(ctx context.Context, req Request) (*Response, error) {
	eventType, err := uc.eventTypeRepo.GetByID(ctx, req.EventTypeID)
	if err != nil {
		if errors.Is(err, eventtypestorage.ErrEventTypeNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrEventTypeNotFound, req.EventTypeID)
		}
		uc.logger.Error("get_available_slots: failed to get event type %d: %v", req.EventTypeID, err)
		return nil, fmt.Errorf("%w: failed to get event type: %v", ErrInternal, err)
	}

	profile, err := uc.loadProfile(ctx, eventType)
	if err != nil {
		return nil, err
	}

	nowUTC := uc.timeProvider.Now().UTC()

	rangeStart := dateOnly(req.RangeStart)
	rangeEnd := dateOnly(req.RangeEnd)

	// Диапазон ограничен горизонтом от "сейчас": запрошенный хвост за горизонтом
	// молча отсекается, это не ошибка
	horizon := dateOnly(nowUTC).AddDate(0, 0, domain.DefaultRangeHorizonDays)
	if rangeEnd.After(horizon) {
		rangeEnd = horizon
	}

	response := &Response{
		EventTypeID: eventType.ID,
		RangeStart:  rangeStart,
		RangeEnd:    rangeEnd,
		Timezone:    uc.displayTimezone(req, profile),
		Slots:       []Slot{},
	}

	if rangeEnd.Before(rangeStart) {
		return response, nil
	}

	candidates, err := generateCandidates(profile, eventType, rangeStart, rangeEnd, nowUTC)
	if err != nil {
		if errors.Is(err, tzconv.ErrInvalidTimezone) {
			return nil, fmt.Errorf("%w: profile timezone %q", ErrInvalidTimezone, profile.Timezone)
		}
		uc.logger.Error("get_available_slots: failed to generate candidates for event type %d: %v", eventType.ID, err)
		return nil, fmt.Errorf("%w: failed to generate candidates: %v", ErrInternal, err)
	}

	if len(candidates) == 0 {
		return response, nil
	}

	bookings, err := uc.fetchBookings(ctx, eventType, candidates, rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}

	slots, err := filterConflicts(candidates, bookings, eventType, profile.Timezone)
	if err != nil {
		uc.logger.Error("get_available_slots: failed to filter conflicts for event type %d: %v", eventType.ID, err)
		return nil, fmt.Errorf("%w: failed to filter conflicts: %v", ErrInternal, err)
	}

	response.Slots = slots
	return response, nil
}

// loadProfile загружает профиль доступности типа события: привязанный профиль
// по ID, иначе дефолтный профиль хоста
func (uc *UseCase) loadProfile(ctx context.Context, eventType *domain.EventType) (*domain.AvailabilityProfile, error) {
	var (
		profile *domain.AvailabilityProfile
		err     error
	)

	if eventType.ProfileID != nil {
		profile, err = uc.profileRepo.GetByID(ctx, *eventType.ProfileID)
	} else {
		profile, err = uc.profileRepo.GetDefaultByUserID(ctx, eventType.HostID)
	}

	if err != nil {
		if errors.Is(err, availabilitystorage.ErrProfileNotFound) {
			return nil, fmt.Errorf("%w: event type %d", ErrProfileNotFound, eventType.ID)
		}
		uc.logger.Error("get_available_slots: failed to get availability profile for event type %d: %v", eventType.ID, err)
		return nil, fmt.Errorf("%w: failed to get availability profile: %v", ErrInternal, err)
	}

	return profile, nil
}

// fetchBookings загружает активные бронирования хоста, способные конфликтовать
// с кандидатами. Период запроса расширен буферами события, чтобы захватить
// бронирования соседних дат, чьи буферные окна заходят в диапазон
func (uc *UseCase) fetchBookings(
	ctx context.Context,
	eventType *domain.EventType,
	candidates []Candidate,
	rangeStart, rangeEnd time.Time,
) ([]*domain.Booking, error) {
	periodStart := candidates[0].StartUTC.Add(-time.Duration(eventType.BufferAfterMinutes) * time.Minute)
	periodEnd := candidates[len(candidates)-1].EndUTC.Add(time.Duration(eventType.BufferBeforeMinutes) * time.Minute)

	// Дневной лимит считается по всем бронированиям дат диапазона, поэтому
	// период расширяется до границ календарных дат с запасом на таймзону
	if eventType.HasDailyCap() {
		capStart := rangeStart.Add(-24 * time.Hour)
		capEnd := rangeEnd.Add(48 * time.Hour)
		if capStart.Before(periodStart) {
			periodStart = capStart
		}
		if capEnd.After(periodEnd) {
			periodEnd = capEnd
		}
	}

	bookings, err := uc.bookingRepo.GetByHostWithFilter(ctx, domain.HostBookingsFilter{
		HostID:   eventType.HostID,
		StartUTC: &periodStart,
		EndUTC:   &periodEnd,
	})
	if err != nil {
		uc.logger.Error("get_available_slots: failed to get bookings for host %d: %v", eventType.HostID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	return bookings, nil
}

// displayTimezone возвращает таймзону отображения: таймзона гостя из запроса,
// иначе таймзона профиля
func (uc *UseCase) displayTimezone(req Request, profile *domain.AvailabilityProfile) string {
	if req.GuestTimezone != "" {
		return req.GuestTimezone
	}
	return profile.Timezone
}
