package catalog

import "errors"

var (
	// ErrLocationNotFound возвращается, когда локация не найдена
	ErrLocationNotFound = errors.New("catalog.service: location not found")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("catalog.service: slot not found")

	// ErrDuplicate возвращается при конфликте имени локации или номера слота
	ErrDuplicate = errors.New("catalog.service: duplicate name or number")

	// ErrCapacityViolation возвращается при попытке уменьшить capacity
	// ниже текущей occupancy
	ErrCapacityViolation = errors.New("catalog.service: capacity below current occupancy")

	// ErrLocationHasSlots возвращается при попытке удалить локацию,
	// на которую ещё ссылаются слоты
	ErrLocationHasSlots = errors.New("catalog.service: location still has slots")

	// ErrSlotInUse возвращается при попытке удалить или переклассифицировать
	// слот, занятый бронированием
	ErrSlotInUse = errors.New("catalog.service: slot is reserved or occupied")

	// ErrInvalidSlotStatus возвращается, когда админ пытается выставить
	// слоту статус, управляемый только жизненным циклом бронирований
	ErrInvalidSlotStatus = errors.New("catalog.service: slot status not settable by admin")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("catalog.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog.service: internal error")
)
