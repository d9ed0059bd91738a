package create_booking

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден или деактивирован
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrClassMismatch возвращается, когда класс ТС не совпадает с классом слота
	ErrClassMismatch = errors.New("create_booking: vehicle class does not match slot class")

	// ErrInvalidTimeRange возвращается, когда конец окна не позже начала
	ErrInvalidTimeRange = errors.New("create_booking: end time must be after start time")

	// ErrSlotNotAvailable возвращается, когда слот на обслуживании
	// или окно пересекается с существующим бронированием
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrConflict возвращается, когда конкурирующая запись выиграла гонку
	// на том же слоте. Операцию можно повторить.
	ErrConflict = errors.New("create_booking: concurrent booking conflict, retry")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
