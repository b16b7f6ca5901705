package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	bookingstorage "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	eventtypestorage "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/eventtype"
	"github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

// UseCase usecase создания бронирования с защитой от двойного бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	eventTypeRepo EventTypeRepository
	slotsFinder   SlotsFinder
	txManager     TxManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый usecase для создания бронирования
func NewUseCase(
	bookingRepo BookingRepository,
	eventTypeRepo EventTypeRepository,
	slotsFinder SlotsFinder,
	txManager TxManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		eventTypeRepo: eventTypeRepo,
		slotsFinder:   slotsFinder,
		txManager:     txManager,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// Execute создает бронирование на запрошенный слот.
//
// Проверка доступности и вставка выполняются в одной SERIALIZABLE транзакции:
// слоты пересчитываются с моментом "сейчас" на время коммита, запрошенное окно
// должно точно совпасть с одним из валидных слотов. Из двух конкурентных
// запросов на один слот успешно завершится ровно один, второй получит
// ErrSlotNotAvailable (конфликт сериализации или exclusion constraint в БД)
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	eventType, err := uc.eventTypeRepo.GetByID(ctx, req.EventTypeID)
	if err != nil {
		if errors.Is(err, eventtypestorage.ErrEventTypeNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrEventTypeNotFound, req.EventTypeID)
		}
		uc.logger.Error("create_booking: failed to get event type %d: %v", req.EventTypeID, err)
		return nil, fmt.Errorf("%w: failed to get event type: %v", ErrInternal, err)
	}

	startUTC := req.StartUTC.UTC().Truncate(time.Minute)
	endUTC := startUTC.Add(time.Duration(eventType.DurationMinutes) * time.Minute)

	// Конец слота выводится из длительности типа события. Если клиент прислал
	// свой endUtc, он обязан совпасть - иначе гость видел устаревшую длительность
	if !req.EndUTC.IsZero() && !req.EndUTC.UTC().Truncate(time.Minute).Equal(endUTC) {
		return nil, fmt.Errorf("%w: endUtc does not match event type duration (%d min)", ErrInvalidInput, eventType.DurationMinutes)
	}

	// Слот в прошлом отклоняем до открытия SERIALIZABLE транзакции:
	// пересчёт слотов такой запрос всё равно не пропустит
	if startUTC.Before(uc.timeProvider.Now().UTC()) {
		return nil, fmt.Errorf("%w: slot %s is in the past", ErrSlotNotAvailable, startUTC.Format(time.RFC3339))
	}

	var created *domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		available, err := uc.slotAvailable(txCtx, eventType, startUTC, endUTC)
		if err != nil {
			return err
		}
		if !available {
			return fmt.Errorf("%w: %s", ErrSlotNotAvailable, startUTC.Format(time.RFC3339))
		}

		booking := &domain.Booking{
			UID:           uuid.New().String(),
			EventTypeID:   eventType.ID,
			HostID:        eventType.HostID,
			Status:        eventType.InitialStatus(),
			StartUTC:      startUTC,
			EndUTC:        endUTC,
			GuestName:     req.GuestName,
			GuestEmail:    req.GuestEmail,
			GuestTimezone: req.GuestTimezone,
			Notes:         req.Notes,
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotAvailable):
			return nil, err
		case errors.Is(err, bookingstorage.ErrSlotTaken):
			return nil, fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
		case errors.Is(err, txmanager.ErrSerializationFailure):
			// Повторы исчерпаны - конкурент успел занять слот
			return nil, fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
		case errors.Is(err, get_available_slots.ErrProfileNotFound):
			return nil, fmt.Errorf("%w: event type %d", ErrProfileNotFound, eventType.ID)
		default:
			uc.logger.Error("create_booking: transaction failed for event type %d: %v", eventType.ID, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("create_booking: booking %s created for event type %d, slot %s - %s",
		created.UID, eventType.ID, created.StartUTC.Format(time.RFC3339), created.EndUTC.Format(time.RFC3339))

	return &Response{
		UID:           created.UID,
		EventTypeID:   created.EventTypeID,
		HostID:        created.HostID,
		Status:        string(created.Status),
		StartUTC:      created.StartUTC,
		EndUTC:        created.EndUTC,
		GuestName:     created.GuestName,
		GuestEmail:    created.GuestEmail,
		GuestTimezone: created.GuestTimezone,
		Notes:         created.Notes,
		CreatedAt:     created.CreatedAt,
	}, nil
}

// slotAvailable пересчитывает доступные слоты вокруг запрошенного окна и
// проверяет точное совпадение. День UTC берется с запасом в сутки по обе
// стороны: локальная дата профиля может отличаться от UTC даты
func (uc *UseCase) slotAvailable(ctx context.Context, eventType *domain.EventType, startUTC, endUTC time.Time) (bool, error) {
	day := time.Date(startUTC.Year(), startUTC.Month(), startUTC.Day(), 0, 0, 0, 0, time.UTC)

	resp, err := uc.slotsFinder.Execute(ctx, get_available_slots.Request{
		EventTypeID: eventType.ID,
		RangeStart:  day.AddDate(0, 0, -1),
		RangeEnd:    day.AddDate(0, 0, 1),
	})
	if err != nil {
		return false, err
	}

	for _, slot := range resp.Slots {
		if slot.StartUTC.Equal(startUTC) && slot.EndUTC.Equal(endUTC) {
			return true, nil
		}
	}
	return false, nil
}
