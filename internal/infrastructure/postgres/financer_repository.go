package postgres

import (
	"context"
	"fmt"

	"github.com/beneflow/beneflow-api/internal/domain"
	"github.com/beneflow/beneflow-api/internal/domain/entity"
	"github.com/beneflow/beneflow-api/internal/domain/repository"
)

var _ repository.FinancerRepository = (*FinancerRepo)(nil)

const financerColumns = `
	id, name, division_id, external_id, timezone, registration_number,
	registration_country, website, iban, bic, vat_number, company_number,
	representative_id, active, status, available_languages, core_package_price,
	created_at, updated_at`

// FinancerRepo implementación de FinancerRepository sobre PostgreSQL (usable con pool o tx).
type FinancerRepo struct {
	q Querier
}

// NewFinancerRepository construye el adaptador de financiadores. Pasar pool o tx (Querier).
func NewFinancerRepository(q Querier) *FinancerRepo {
	return &FinancerRepo{q: q}
}

// Create persiste un nuevo financiador.
func (r *FinancerRepo) Create(ctx context.Context, f *entity.Financer) error {
	query := `
		INSERT INTO financers (` + financerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		f.ID, f.Name, f.DivisionID, f.ExternalID, f.Timezone, f.RegistrationNumber,
		f.RegistrationCountry, f.Website, f.IBAN, f.BIC, f.VATNumber, f.CompanyNumber,
		f.RepresentativeID, f.Active, f.Status, f.AvailableLanguages, f.CorePackagePrice,
		f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert financer: %w", err)
	}
	return nil
}

// GetByID obtiene un financiador por ID. Devuelve (nil, nil) si no existe.
func (r *FinancerRepo) GetByID(ctx context.Context, id string) (*entity.Financer, error) {
	query := `SELECT ` + financerColumns + ` FROM financers WHERE id = $1`
	f, err := scanFinancer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get financer: %w", err)
	}
	return f, nil
}

// List devuelve financiadores filtrados con paginación y el total sin paginar.
func (r *FinancerRepo) List(ctx context.Context, filter repository.FinancerFilter) ([]*entity.Financer, int, error) {
	where := ` WHERE ($1 = '' OR division_id::text = $1) AND ($2 = '' OR status = $2)`

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM financers`+where, filter.DivisionID, filter.Status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count financers: %w", err)
	}

	query := `SELECT ` + financerColumns + ` FROM financers` + where + `
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, filter.DivisionID, filter.Status, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list financers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Financer
	for rows.Next() {
		f, err := scanFinancer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan financer: %w", err)
		}
		list = append(list, f)
	}
	return list, total, rows.Err()
}

// Update actualiza un financiador existente.
func (r *FinancerRepo) Update(ctx context.Context, f *entity.Financer) error {
	query := `
		UPDATE financers SET
			name = $2, division_id = $3, external_id = $4, timezone = $5,
			registration_number = $6, registration_country = $7, website = $8,
			iban = $9, bic = $10, vat_number = $11, company_number = $12,
			representative_id = $13, active = $14, status = $15,
			available_languages = $16, core_package_price = $17, updated_at = $18
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		f.ID, f.Name, f.DivisionID, f.ExternalID, f.Timezone,
		f.RegistrationNumber, f.RegistrationCountry, f.Website,
		f.IBAN, f.BIC, f.VATNumber, f.CompanyNumber,
		f.RepresentativeID, f.Active, f.Status,
		f.AvailableLanguages, f.CorePackagePrice, f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update financer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un financiador por ID (las FK borran en cascada pivots e historial).
func (r *FinancerRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM financers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete financer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListAssignments devuelve todas las filas del pivot financer_module del financiador.
func (r *FinancerRepo) ListAssignments(ctx context.Context, financerID string) ([]*entity.FinancerModuleAssignment, error) {
	query := `
		SELECT financer_id, module_id, active, promoted, price_per_beneficiary, created_at, updated_at
		FROM financer_module WHERE financer_id = $1`
	rows, err := r.q.Query(ctx, query, financerID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	var list []*entity.FinancerModuleAssignment
	for rows.Next() {
		var a entity.FinancerModuleAssignment
		if err := rows.Scan(&a.FinancerID, &a.ModuleID, &a.Active, &a.Promoted, &a.PricePerBeneficiary, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// GetAssignment obtiene una fila del pivot. Devuelve (nil, nil) si nunca fue asignado.
func (r *FinancerRepo) GetAssignment(ctx context.Context, financerID, moduleID string) (*entity.FinancerModuleAssignment, error) {
	query := `
		SELECT financer_id, module_id, active, promoted, price_per_beneficiary, created_at, updated_at
		FROM financer_module WHERE financer_id = $1 AND module_id = $2`
	var a entity.FinancerModuleAssignment
	err := r.q.QueryRow(ctx, query, financerID, moduleID).Scan(
		&a.FinancerID, &a.ModuleID, &a.Active, &a.Promoted, &a.PricePerBeneficiary, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	return &a, nil
}

// UpsertAssignment inserta o actualiza la fila del pivot (por financiador y módulo).
func (r *FinancerRepo) UpsertAssignment(ctx context.Context, a *entity.FinancerModuleAssignment) error {
	query := `
		INSERT INTO financer_module (financer_id, module_id, active, promoted, price_per_beneficiary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (financer_id, module_id) DO UPDATE SET
			active = EXCLUDED.active,
			promoted = EXCLUDED.promoted,
			price_per_beneficiary = EXCLUDED.price_per_beneficiary,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		a.FinancerID, a.ModuleID, a.Active, a.Promoted, a.PricePerBeneficiary, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert assignment: %w", err)
	}
	return nil
}

// CountActiveBeneficiaries cuenta los beneficiarios activos del financiador.
func (r *FinancerRepo) CountActiveBeneficiaries(ctx context.Context, financerID string) (int, error) {
	query := `SELECT count(*) FROM financer_users WHERE financer_id = $1 AND active = true`
	var n int
	if err := r.q.QueryRow(ctx, query, financerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count beneficiaries: %w", err)
	}
	return n, nil
}

// ListBeneficiaries devuelve las ventanas de afiliación del financiador.
func (r *FinancerRepo) ListBeneficiaries(ctx context.Context, financerID string) ([]*entity.FinancerBeneficiary, error) {
	query := `
		SELECT id, financer_id, user_id, active, "from", "to", created_at, updated_at
		FROM financer_users WHERE financer_id = $1`
	rows, err := r.q.Query(ctx, query, financerID)
	if err != nil {
		return nil, fmt.Errorf("list beneficiaries: %w", err)
	}
	defer rows.Close()

	var list []*entity.FinancerBeneficiary
	for rows.Next() {
		var b entity.FinancerBeneficiary
		if err := rows.Scan(&b.ID, &b.FinancerID, &b.UserID, &b.Active, &b.From, &b.To, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan beneficiary: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// scanFinancer escanea una fila en el orden de financerColumns.
func scanFinancer(row interface{ Scan(dest ...any) error }) (*entity.Financer, error) {
	var f entity.Financer
	err := row.Scan(
		&f.ID, &f.Name, &f.DivisionID, &f.ExternalID, &f.Timezone, &f.RegistrationNumber,
		&f.RegistrationCountry, &f.Website, &f.IBAN, &f.BIC, &f.VATNumber, &f.CompanyNumber,
		&f.RepresentativeID, &f.Active, &f.Status, &f.AvailableLanguages, &f.CorePackagePrice,
		&f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
