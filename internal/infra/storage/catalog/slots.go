package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"location_id",
	"number",
	"vehicle_class",
	"status",
	"position_x",
	"position_y",
	"sensor_is_occupied",
	"sensor_confidence",
	"sensor_detected_class",
	"sensor_last_updated",
	"is_active",
	"created_at",
	"updated_at",
}

// CreateSlot создает новый слот
func (r *Repository) CreateSlot(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slots").
		Columns(
			"location_id",
			"number",
			"vehicle_class",
			"status",
			"position_x",
			"position_y",
			"sensor_is_occupied",
			"sensor_confidence",
			"sensor_detected_class",
			"sensor_last_updated",
			"is_active",
		).
		Values(
			slot.LocationID,
			slot.Number,
			slot.Class,
			slot.Status,
			slot.Position.X,
			slot.Position.Y,
			slot.Sensor.IsOccupied,
			slot.Sensor.Confidence,
			slot.Sensor.DetectedClass,
			slot.Sensor.LastUpdated,
			slot.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateSlot - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: CreateSlot - number %q at location %d", ErrDuplicate, slot.Number, slot.LocationID)
		}
		return nil, fmt.Errorf("%w: CreateSlot - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// GetSlot получает слот по ID
func (r *Repository) GetSlot(ctx context.Context, id int64) (*domain.Slot, error) {
	return r.getSlot(ctx, id, false)
}

// GetSlotForUpdate получает слот по ID с блокировкой строки (FOR UPDATE).
// Сердце защиты от двойного бронирования: конкурирующие create-запросы
// на один слот сериализуются на этой блокировке.
func (r *Repository) GetSlotForUpdate(ctx context.Context, id int64) (*domain.Slot, error) {
	return r.getSlot(ctx, id, true)
}

func (r *Repository) getSlot(ctx context.Context, id int64, forUpdate bool) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": id})

	if forUpdate && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getSlot - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getSlot - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// ListSlots получает список слотов с фильтрацией по локации, классу и статусу
func (r *Repository) ListSlots(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("location_id ASC, number ASC")

	if filter.LocationID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"location_id": *filter.LocationID})
	}
	if filter.Class != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"vehicle_class": *filter.Class})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// CountSlotsByLocation считает активные слоты локации.
// Используется сервисным слоем при удалении локации.
func (r *Repository) CountSlotsByLocation(ctx context.Context, locationID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("slots").
		Where(squirrel.Eq{"location_id": locationID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountSlotsByLocation - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountSlotsByLocation - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountHeldSlots считает слоты локации в статусах reserved/occupied по классам.
// Используется реконсилятором для пересчета occupancy.
func (r *Repository) CountHeldSlots(ctx context.Context, locationID int64) (domain.CountByClass, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	heldStatuses := make([]string, len(domain.HeldSlotStatuses))
	for i, s := range domain.HeldSlotStatuses {
		heldStatuses[i] = string(s)
	}

	query, args, err := psqlbuilder.Select("vehicle_class", "COUNT(*)").
		From("slots").
		Where(squirrel.Eq{"location_id": locationID}).
		Where(squirrel.Eq{"status": heldStatuses}).
		Where(squirrel.Eq{"is_active": true}).
		GroupBy("vehicle_class").
		ToSql()

	if err != nil {
		return domain.CountByClass{}, fmt.Errorf("%w: CountHeldSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.CountByClass{}, fmt.Errorf("%w: CountHeldSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var counts domain.CountByClass
	for rows.Next() {
		var class domain.VehicleClass
		var count int
		if err := rows.Scan(&class, &count); err != nil {
			return domain.CountByClass{}, fmt.Errorf("%w: CountHeldSlots - scan row: %v", ErrScanRow, err)
		}
		counts.Set(class, count)
	}

	if err := rows.Err(); err != nil {
		return domain.CountByClass{}, fmt.Errorf("%w: CountHeldSlots - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// UpdateSlot обновляет атрибуты слота
func (r *Repository) UpdateSlot(ctx context.Context, slot *domain.Slot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("number", slot.Number).
		Set("vehicle_class", slot.Class).
		Set("status", slot.Status).
		Set("position_x", slot.Position.X).
		Set("position_y", slot.Position.Y).
		Set("sensor_is_occupied", slot.Sensor.IsOccupied).
		Set("sensor_confidence", slot.Sensor.Confidence).
		Set("sensor_detected_class", slot.Sensor.DetectedClass).
		Set("sensor_last_updated", slot.Sensor.LastUpdated).
		Set("is_active", slot.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slot.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSlot - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: UpdateSlot - number %q at location %d", ErrDuplicate, slot.Number, slot.LocationID)
		}
		return fmt.Errorf("%w: UpdateSlot - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSlot - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// UpdateSlotStatus обновляет только статус слота
func (r *Repository) UpdateSlotStatus(ctx context.Context, id int64, status domain.SlotStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSlotStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSlotStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSlotStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// DeleteSlot физически удаляет слот.
// Проверка, что слот не занят бронированием, выполняется сервисным слоем.
func (r *Repository) DeleteSlot(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteSlot - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteSlot - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteSlot - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// scanSlot сканирует строку результата в доменную модель слота
func scanSlot(row scanner) (*domain.Slot, error) {
	var slot domain.Slot
	var createdAt, updatedAt, sensorUpdated sql.NullTime
	var detectedClass sql.NullString

	err := row.Scan(
		&slot.ID,
		&slot.LocationID,
		&slot.Number,
		&slot.Class,
		&slot.Status,
		&slot.Position.X,
		&slot.Position.Y,
		&slot.Sensor.IsOccupied,
		&slot.Sensor.Confidence,
		&detectedClass,
		&sensorUpdated,
		&slot.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if detectedClass.Valid {
		class := domain.VehicleClass(detectedClass.String)
		slot.Sensor.DetectedClass = &class
	}
	if sensorUpdated.Valid {
		t := sensorUpdated.Time
		slot.Sensor.LastUpdated = &t
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}
