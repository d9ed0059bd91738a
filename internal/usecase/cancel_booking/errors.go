package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrForbidden возвращается, когда актор не владелец бронирования и не администратор
	ErrForbidden = errors.New("cancel_booking: actor is not allowed to cancel this booking")

	// ErrInvalidStateTransition возвращается при попытке отменить
	// бронирование в терминальном статусе
	ErrInvalidStateTransition = errors.New("cancel_booking: booking cannot be cancelled in its current status")

	// ErrConflict возвращается при проигрыше гонки сериализации. Операцию можно повторить.
	ErrConflict = errors.New("cancel_booking: concurrent update conflict, retry")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
