package postgres

import (
	"context"
	"fmt"

	"github.com/beneflow/beneflow-api/internal/domain/entity"
	"github.com/beneflow/beneflow-api/internal/domain/repository"
)

var _ repository.DivisionRepository = (*DivisionRepo)(nil)

// DivisionRepo implementación de DivisionRepository sobre PostgreSQL (usable con pool o tx).
type DivisionRepo struct {
	q Querier
}

// NewDivisionRepository construye el adaptador de divisiones. Pasar pool o tx (Querier).
func NewDivisionRepository(q Querier) *DivisionRepo {
	return &DivisionRepo{q: q}
}

// GetByID obtiene una división por ID. Devuelve (nil, nil) si no existe.
func (r *DivisionRepo) GetByID(ctx context.Context, id string) (*entity.Division, error) {
	query := `
		SELECT id, name, country, language, core_package_price, created_at, updated_at
		FROM divisions WHERE id = $1`
	var d entity.Division
	err := r.q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Name, &d.Country, &d.Language, &d.CorePackagePrice, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get division: %w", err)
	}
	return &d, nil
}

// List devuelve todas las divisiones ordenadas por nombre.
func (r *DivisionRepo) List(ctx context.Context) ([]*entity.Division, error) {
	query := `
		SELECT id, name, country, language, core_package_price, created_at, updated_at
		FROM divisions ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list divisions: %w", err)
	}
	defer rows.Close()

	var list []*entity.Division
	for rows.Next() {
		var d entity.Division
		if err := rows.Scan(&d.ID, &d.Name, &d.Country, &d.Language, &d.CorePackagePrice, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan division: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// ListActivations devuelve la lista blanca division_module de la división.
func (r *DivisionRepo) ListActivations(ctx context.Context, divisionID string) ([]*entity.DivisionModuleActivation, error) {
	query := `
		SELECT division_id, module_id, active, price_per_beneficiary, created_at, updated_at
		FROM division_module WHERE division_id = $1`
	rows, err := r.q.Query(ctx, query, divisionID)
	if err != nil {
		return nil, fmt.Errorf("list activations: %w", err)
	}
	defer rows.Close()

	var list []*entity.DivisionModuleActivation
	for rows.Next() {
		var a entity.DivisionModuleActivation
		if err := rows.Scan(&a.DivisionID, &a.ModuleID, &a.Active, &a.PricePerBeneficiary, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan activation: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// GetActivation obtiene una fila de la lista blanca. Devuelve (nil, nil) si no existe.
func (r *DivisionRepo) GetActivation(ctx context.Context, divisionID, moduleID string) (*entity.DivisionModuleActivation, error) {
	query := `
		SELECT division_id, module_id, active, price_per_beneficiary, created_at, updated_at
		FROM division_module WHERE division_id = $1 AND module_id = $2`
	var a entity.DivisionModuleActivation
	err := r.q.QueryRow(ctx, query, divisionID, moduleID).Scan(
		&a.DivisionID, &a.ModuleID, &a.Active, &a.PricePerBeneficiary, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get activation: %w", err)
	}
	return &a, nil
}

// UpsertActivation inserta o actualiza la fila de la lista blanca.
func (r *DivisionRepo) UpsertActivation(ctx context.Context, a *entity.DivisionModuleActivation) error {
	query := `
		INSERT INTO division_module (division_id, module_id, active, price_per_beneficiary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (division_id, module_id) DO UPDATE SET
			active = EXCLUDED.active,
			price_per_beneficiary = EXCLUDED.price_per_beneficiary,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		a.DivisionID, a.ModuleID, a.Active, a.PricePerBeneficiary, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert activation: %w", err)
	}
	return nil
}

// ListFinancerIDs devuelve los ids de los financiadores de la división (para la cascada).
func (r *DivisionRepo) ListFinancerIDs(ctx context.Context, divisionID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT id FROM financers WHERE division_id = $1`, divisionID)
	if err != nil {
		return nil, fmt.Errorf("list financer ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan financer id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
