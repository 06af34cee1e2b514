package postgres

import (
	"context"
	"fmt"

	"github.com/beneflow/beneflow-api/internal/domain"
	"github.com/beneflow/beneflow-api/internal/domain/entity"
	"github.com/beneflow/beneflow-api/internal/domain/repository"
)

var _ repository.ModuleRepository = (*ModuleRepo)(nil)

// ModuleRepo implementación de ModuleRepository sobre PostgreSQL (usable con pool o tx).
// name y description son columnas JSONB locale->texto.
type ModuleRepo struct {
	q Querier
}

// NewModuleRepository construye el adaptador del catálogo. Pasar pool o tx (Querier).
func NewModuleRepository(q Querier) *ModuleRepo {
	return &ModuleRepo{q: q}
}

// Create persiste una entrada del catálogo.
func (r *ModuleRepo) Create(ctx context.Context, m *entity.Module) error {
	query := `
		INSERT INTO modules (id, name, description, category, is_core, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.Description, m.Category, m.IsCore, m.Active, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert module: %w", err)
	}
	return nil
}

// GetByID obtiene un módulo por ID. Devuelve (nil, nil) si no existe.
func (r *ModuleRepo) GetByID(ctx context.Context, id string) (*entity.Module, error) {
	query := `
		SELECT id, name, description, category, is_core, active, created_at, updated_at
		FROM modules WHERE id = $1`
	var m entity.Module
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Name, &m.Description, &m.Category, &m.IsCore, &m.Active, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get module: %w", err)
	}
	return &m, nil
}

// GetByIDs devuelve solo los módulos encontrados; los ids desconocidos no aparecen.
func (r *ModuleRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Module, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, name, description, category, is_core, active, created_at, updated_at
		FROM modules WHERE id::text = ANY($1)`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get modules by ids: %w", err)
	}
	defer rows.Close()
	return scanModules(rows)
}

// List devuelve el catálogo completo ordenado por categoría.
func (r *ModuleRepo) List(ctx context.Context) ([]*entity.Module, error) {
	query := `
		SELECT id, name, description, category, is_core, active, created_at, updated_at
		FROM modules ORDER BY category, created_at`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	defer rows.Close()
	return scanModules(rows)
}

// Update actualiza una entrada del catálogo. is_core no se toca: es inmutable.
func (r *ModuleRepo) Update(ctx context.Context, m *entity.Module) error {
	query := `
		UPDATE modules SET name = $2, description = $3, category = $4, active = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, m.ID, m.Name, m.Description, m.Category, m.Active, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update module: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una entrada del catálogo.
func (r *ModuleRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM modules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete module: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanModules(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*entity.Module, error) {
	var list []*entity.Module
	for rows.Next() {
		var m entity.Module
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Category, &m.IsCore, &m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
