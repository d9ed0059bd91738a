package availability

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден или деактивирован
	ErrSlotNotFound = errors.New("availability: slot not found")

	// ErrInternal возвращается при внутренних ошибках проверки
	ErrInternal = errors.New("availability: internal error")
)
