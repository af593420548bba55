package services

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"time"

	"github.com/go-sql-driver/mysql"

	"hotel/internal/db"
	"hotel/internal/domain"
	"hotel/internal/domain/models"
	"hotel/internal/metrics"
	"hotel/internal/repositories"
	"hotel/internal/utils"
)

// maxConflictRetries bounds retries of transient lock failures before the
// create is surfaced as a booking conflict.
const maxConflictRetries = 3

var passportRe = regexp.MustCompile(`^[A-Za-z0-9]{5,20}$`)

// BookingService owns booking creation and the state-gated mutations. The
// create path re-checks availability inside the same transaction as the
// insert, which closes the historical check-then-create race.
type BookingService struct {
	BookingRepo repositories.BookingRepository
	UnitRepo    repositories.UnitRepository
	RoomRepo    repositories.RoomRepository
	UserRepo    repositories.UserRepository
	DB          *sql.DB
	Policy      utils.StayPolicy
	RequestID   string

	// Now is overridable in tests; nil means time.Now.
	Now func() time.Time
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// BookingCreate is the input of Create. Dates arrive raw and are normalized
// against the service's stay policy.
type BookingCreate struct {
	GuestID        int64          `json:"guest_id"`
	RoomID         string         `json:"room_id"`
	UnitID         string         `json:"unit_id"`
	PassportNumber string         `json:"passport_number"`
	Meals          string         `json:"meals"`
	Start          string         `json:"start"`
	End            string         `json:"end"`
	Payment        models.Payment `json:"payment"`
}

// Create validates the request, then runs lock-recheck-insert in a single
// transaction. Two concurrent conflicting creates serialize on the unit row;
// the loser gets a BookingConflictError.
func (s BookingService) Create(ctx context.Context, in BookingCreate) (models.Booking, error) {
	if in.Meals == "" {
		in.Meals = "none"
	}
	if err := s.validateCreate(in); err != nil {
		return models.Booking{}, err
	}

	start, end, err := s.Policy.NormalizeStay(in.Start, in.End)
	if err != nil {
		return models.Booking{}, err
	}
	requested := models.Interval{Start: start, End: end}

	booking := models.Booking{
		GuestID:        in.GuestID,
		RoomID:         in.RoomID,
		UnitID:         in.UnitID,
		PassportNumber: in.PassportNumber,
		Meals:          in.Meals,
		Dates: models.StayDates{
			CheckInHour:  s.Policy.CheckInHour,
			CheckOutHour: s.Policy.CheckOutHour,
			TimeZone:     s.Policy.Location.String(),
			Start:        start,
			End:          end,
		},
		Payment: in.Payment,
	}
	if booking.Payment.Currency == "" {
		booking.Payment.Currency = "USD"
	}

	var lastErr error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		lastErr = db.WithTx(ctx, s.DB, nil, func(tx *sql.Tx) error {
			return s.insertChecked(tx, &booking, requested)
		})
		if lastErr == nil {
			metrics.IncBookingCreated()
			utils.LogEvent(s.RequestID, "booking", "create", "booking created for unit "+booking.UnitID)
			return booking, nil
		}
		if !isRetryableTxErr(lastErr) {
			break
		}
	}

	if domain.IsBookingConflict(lastErr) || isRetryableTxErr(lastErr) {
		metrics.IncBookingConflict()
		return models.Booking{}, domain.BookingConflictError{UnitID: in.UnitID, Err: lastErr}
	}
	return models.Booking{}, lastErr
}

func (s BookingService) insertChecked(tx *sql.Tx, booking *models.Booking, requested models.Interval) error {
	// Referenced documents must exist; checked inside the transaction so the
	// unit cannot be deleted underneath the insert.
	unit, err := s.UnitRepo.GetForUpdateTx(tx, booking.UnitID)
	if err != nil {
		return err
	}
	if unit.RoomID != booking.RoomID {
		return domain.ValidationError{Field: "unit_id", Msg: "unit does not belong to the given room type"}
	}
	if ok, err := s.UserRepo.ExistsTx(tx, booking.GuestID); err != nil {
		return err
	} else if !ok {
		return domain.ValidationError{Field: "guest_id", Msg: "guest_id doesn't exist in users collection"}
	}

	active, err := s.BookingRepo.ActiveIntervalsForUpdateTx(tx, booking.UnitID, s.now())
	if err != nil {
		return err
	}
	for _, iv := range active {
		if requested.ConflictsWith(iv) {
			return domain.BookingConflictError{UnitID: booking.UnitID}
		}
	}

	return s.BookingRepo.InsertTx(tx, booking)
}

func (s BookingService) validateCreate(in BookingCreate) error {
	if in.GuestID <= 0 {
		return domain.ValidationError{Field: "guest_id", Msg: "field is required"}
	}
	if in.RoomID == "" {
		return domain.ValidationError{Field: "room_id", Msg: "field is required"}
	}
	if in.UnitID == "" {
		return domain.ValidationError{Field: "unit_id", Msg: "field is required"}
	}
	if !passportRe.MatchString(in.PassportNumber) {
		return domain.ValidationError{Field: "passport_number", Msg: "has to be 5 to 20 letters and numbers"}
	}
	if !models.ValidMealPlan(in.Meals) {
		return domain.ValidationError{Field: "meals", Msg: "available values are: 'none', 'breakfast', 'breakfast_and_lunch', 'all_inclusive'"}
	}
	if !models.ValidPaymentMethod(in.Payment.Method) {
		return domain.ValidationError{Field: "payment.method", Msg: "available values are: 'at_property', 'online'"}
	}
	if in.Payment.Amount < 0 {
		return domain.ValidationError{Field: "payment.amount", Msg: "has to be non-negative"}
	}
	return nil
}

// GetByID loads one booking.
func (s BookingService) GetByID(ctx context.Context, id int64) (models.Booking, error) {
	return s.BookingRepo.GetByID(ctx, id)
}

// ListByStatus filters bookings by derived status name.
func (s BookingService) ListByStatus(ctx context.Context, status string) ([]models.Booking, error) {
	switch status {
	case "", "booked", "in_stay", "completed":
	default:
		return nil, domain.ValidationError{Field: "status", Msg: "available values are: 'booked', 'in_stay', 'completed'"}
	}
	return s.BookingRepo.ListByStatus(ctx, status, s.now())
}

// ListByGuest returns one guest's bookings.
func (s BookingService) ListByGuest(ctx context.Context, guestID int64) ([]models.Booking, error) {
	return s.BookingRepo.ListByGuest(ctx, guestID)
}

// Update applies guest-editable fields (meals, passport number). Permitted
// only while the derived status is still Booked.
func (s BookingService) Update(ctx context.Context, id int64, upd models.BookingUpdate) (models.Booking, error) {
	booking, err := s.BookingRepo.GetByID(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}

	if status := booking.Status(s.now()); status != models.StatusBooked {
		return models.Booking{}, domain.NotModifiableError{Status: status}
	}

	if upd.Meals != nil {
		if !models.ValidMealPlan(*upd.Meals) {
			return models.Booking{}, domain.ValidationError{Field: "meals", Msg: "available values are: 'none', 'breakfast', 'breakfast_and_lunch', 'all_inclusive'"}
		}
		booking.Meals = *upd.Meals
	}
	if upd.PassportNumber != nil {
		if !passportRe.MatchString(*upd.PassportNumber) {
			return models.Booking{}, domain.ValidationError{Field: "passport_number", Msg: "has to be 5 to 20 letters and numbers"}
		}
		booking.PassportNumber = *upd.PassportNumber
	}

	if err := s.BookingRepo.UpdateGuestFields(ctx, id, booking.Meals, booking.PassportNumber); err != nil {
		return models.Booking{}, err
	}
	return booking, nil
}

// Delete removes a booking.
func (s BookingService) Delete(ctx context.Context, id int64) error {
	return s.BookingRepo.Delete(ctx, id)
}

// isRetryableTxErr recognizes MySQL deadlock (1213) and lock wait timeout
// (1205), both safe to retry as a whole transaction.
func isRetryableTxErr(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1213 || myErr.Number == 1205
	}
	return false
}
