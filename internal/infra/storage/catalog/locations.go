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

var locationColumns = []string{
	"id",
	"name",
	"description",
	"zone",
	"location_type",
	"capacity_two_wheeler",
	"capacity_four_wheeler",
	"capacity_bus",
	"occupancy_two_wheeler",
	"occupancy_four_wheeler",
	"occupancy_bus",
	"is_active",
	"created_at",
	"updated_at",
}

// CreateLocation создает новую локацию
func (r *Repository) CreateLocation(ctx context.Context, location *domain.Location) (*domain.Location, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("locations").
		Columns(
			"name",
			"description",
			"zone",
			"location_type",
			"capacity_two_wheeler",
			"capacity_four_wheeler",
			"capacity_bus",
			"occupancy_two_wheeler",
			"occupancy_four_wheeler",
			"occupancy_bus",
			"is_active",
		).
		Values(
			location.Name,
			location.Description,
			location.Zone,
			location.Type,
			location.Capacity.TwoWheeler,
			location.Capacity.FourWheeler,
			location.Capacity.Bus,
			location.Occupancy.TwoWheeler,
			location.Occupancy.FourWheeler,
			location.Occupancy.Bus,
			location.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateLocation - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&location.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: CreateLocation - name %q", ErrDuplicate, location.Name)
		}
		return nil, fmt.Errorf("%w: CreateLocation - execute insert: %v", ErrExecQuery, err)
	}

	location.CreatedAt = createdAt.Time
	location.UpdatedAt = updatedAt.Time

	return location, nil
}

// GetLocation получает локацию по ID
func (r *Repository) GetLocation(ctx context.Context, id int64) (*domain.Location, error) {
	return r.getLocation(ctx, id, false)
}

// GetLocationForUpdate получает локацию по ID с блокировкой строки (FOR UPDATE).
// Должен вызываться только внутри транзакции.
func (r *Repository) GetLocationForUpdate(ctx context.Context, id int64) (*domain.Location, error) {
	return r.getLocation(ctx, id, true)
}

func (r *Repository) getLocation(ctx context.Context, id int64, forUpdate bool) (*domain.Location, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(locationColumns...).
		From("locations").
		Where(squirrel.Eq{"id": id})

	// Блокировка строки имеет смысл только внутри транзакции
	if forUpdate && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getLocation - build select query: %v", ErrBuildQuery, err)
	}

	location, err := scanLocation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrLocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getLocation - scan location: %v", ErrScanRow, err)
	}

	return location, nil
}

// ListLocations получает список локаций. Неактивные локации исключаются,
// если includeInactive = false.
func (r *Repository) ListLocations(ctx context.Context, includeInactive bool) ([]*domain.Location, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(locationColumns...).
		From("locations").
		OrderBy("name ASC")

	if !includeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListLocations - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListLocations - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	locations := make([]*domain.Location, 0)
	for rows.Next() {
		location, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListLocations - scan row: %v", ErrScanRow, err)
		}
		locations = append(locations, location)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListLocations - rows error: %v", ErrScanRow, err)
	}

	return locations, nil
}

// UpdateLocation обновляет атрибуты и counters локации
func (r *Repository) UpdateLocation(ctx context.Context, location *domain.Location) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("locations").
		Set("name", location.Name).
		Set("description", location.Description).
		Set("zone", location.Zone).
		Set("location_type", location.Type).
		Set("capacity_two_wheeler", location.Capacity.TwoWheeler).
		Set("capacity_four_wheeler", location.Capacity.FourWheeler).
		Set("capacity_bus", location.Capacity.Bus).
		Set("occupancy_two_wheeler", location.Occupancy.TwoWheeler).
		Set("occupancy_four_wheeler", location.Occupancy.FourWheeler).
		Set("occupancy_bus", location.Occupancy.Bus).
		Set("is_active", location.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": location.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateLocation - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: UpdateLocation - name %q", ErrDuplicate, location.Name)
		}
		return fmt.Errorf("%w: UpdateLocation - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateLocation - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrLocationNotFound
	}

	return nil
}

// UpdateOccupancy перезаписывает счетчики занятости локации
func (r *Repository) UpdateOccupancy(ctx context.Context, locationID int64, occupancy domain.CountByClass) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("locations").
		Set("occupancy_two_wheeler", occupancy.TwoWheeler).
		Set("occupancy_four_wheeler", occupancy.FourWheeler).
		Set("occupancy_bus", occupancy.Bus).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": locationID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateOccupancy - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateOccupancy - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateOccupancy - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrLocationNotFound
	}

	return nil
}

// DeleteLocation физически удаляет локацию.
// Проверка, что на локацию не ссылаются слоты, выполняется сервисным слоем.
func (r *Repository) DeleteLocation(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("locations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteLocation - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteLocation - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteLocation - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrLocationNotFound
	}

	return nil
}

// scanner общий интерфейс *sql.Row и *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanLocation сканирует строку результата в доменную модель локации
func scanLocation(row scanner) (*domain.Location, error) {
	var location domain.Location
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&location.ID,
		&location.Name,
		&location.Description,
		&location.Zone,
		&location.Type,
		&location.Capacity.TwoWheeler,
		&location.Capacity.FourWheeler,
		&location.Capacity.Bus,
		&location.Occupancy.TwoWheeler,
		&location.Occupancy.FourWheeler,
		&location.Occupancy.Bus,
		&location.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	location.CreatedAt = createdAt.Time
	location.UpdatedAt = updatedAt.Time

	return &location, nil
}
