package reconcile_occupancy

// Request модель запроса на реконсиляцию occupancy локации
type Request struct {
	LocationID int64
}

// ClassResult результат реконсиляции по одному классу ТС
type ClassResult struct {
	Class    string
	Previous int // Значение до реконсиляции
	Counted  int // Пересчитанное значение по слотам
	Drifted  bool
}

// Response результат реконсиляции: пересчитанные счетчики по классам
type Response struct {
	LocationID int64
	Corrected  bool // Был ли обнаружен и исправлен дрейф
	Results    []ClassResult
}
