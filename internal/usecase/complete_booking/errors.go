package complete_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("complete_booking: booking not found")

	// ErrForbidden возвращается, когда актор не владелец бронирования и не администратор
	ErrForbidden = errors.New("complete_booking: actor is not allowed to complete this booking")

	// ErrInvalidStateTransition возвращается при попытке завершить
	// бронирование не в статусе active
	ErrInvalidStateTransition = errors.New("complete_booking: booking cannot be completed in its current status")

	// ErrConflict возвращается при проигрыше гонки сериализации. Операцию можно повторить.
	ErrConflict = errors.New("complete_booking: concurrent update conflict, retry")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("complete_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("complete_booking: internal error")
)
