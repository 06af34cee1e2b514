// Package apptest provee implementaciones en memoria de los puertos de
// persistencia para los tests de los casos de uso. El MemStore guarda todo el
// estado compartido; el TxRunner lo clona antes de ejecutar fn y lo restaura si
// fn falla, imitando BEGIN/COMMIT/ROLLBACK y permitiendo verificar atomicidad
// sin base de datos.
package apptest

import (
	"context"
	"errors"
	"fmt"

	"github.com/beneflow/beneflow-api/internal/domain/entity"
	"github.com/beneflow/beneflow-api/internal/domain/repository"
)

// ErrAppendFallido es el error que devuelve HistoryRepo.Append cuando
// MemStore.FailAppend está activo.
var ErrAppendFallido = errors.New("append del ledger fallido")

// MemStore es el estado compartido de todos los fakes.
type MemStore struct {
	Financers   map[string]*entity.Financer
	Divisions   map[string]*entity.Division
	Modules     map[string]*entity.Module
	Activations map[string]*entity.DivisionModuleActivation // clave PairKey(divisionID, moduleID)
	Assignments map[string]*entity.FinancerModuleAssignment // clave PairKey(financerID, moduleID)
	Ledger      []*entity.PricingHistoryEntry

	// FailAppend fuerza el fallo de HistoryRepo.Append para probar el rollback.
	FailAppend bool

	beneficiariesMap map[string][]*entity.FinancerBeneficiary
}

// NewMemStore construye un estado vacío.
func NewMemStore() *MemStore {
	return &MemStore{
		Financers:   map[string]*entity.Financer{},
		Divisions:   map[string]*entity.Division{},
		Modules:     map[string]*entity.Module{},
		Activations: map[string]*entity.DivisionModuleActivation{},
		Assignments: map[string]*entity.FinancerModuleAssignment{},
	}
}

// PairKey arma la clave de los pivots (división|módulo, financiador|módulo).
func PairKey(a, b string) string { return a + "|" + b }

func (s *MemStore) clone() *MemStore {
	c := NewMemStore()
	c.FailAppend = s.FailAppend
	for k, v := range s.Financers {
		f := *v
		c.Financers[k] = &f
	}
	for k, v := range s.Divisions {
		d := *v
		c.Divisions[k] = &d
	}
	for k, v := range s.Modules {
		m := *v
		c.Modules[k] = &m
	}
	for k, v := range s.Activations {
		a := *v
		c.Activations[k] = &a
	}
	for k, v := range s.Assignments {
		a := *v
		c.Assignments[k] = &a
	}
	c.Ledger = append([]*entity.PricingHistoryEntry{}, s.Ledger...)
	if s.beneficiariesMap != nil {
		c.beneficiariesMap = map[string][]*entity.FinancerBeneficiary{}
		for k, v := range s.beneficiariesMap {
			c.beneficiariesMap[k] = v
		}
	}
	return c
}

func (s *MemStore) restore(from *MemStore) {
	s.Financers = from.Financers
	s.Divisions = from.Divisions
	s.Modules = from.Modules
	s.Activations = from.Activations
	s.Assignments = from.Assignments
	s.Ledger = from.Ledger
	s.beneficiariesMap = from.beneficiariesMap
}

// ── FinancerRepository ──

// FinancerRepo fake en memoria de repository.FinancerRepository.
type FinancerRepo struct{ Store *MemStore }

var _ repository.FinancerRepository = (*FinancerRepo)(nil)

func (r *FinancerRepo) Create(_ context.Context, f *entity.Financer) error {
	cp := *f
	r.Store.Financers[f.ID] = &cp
	return nil
}

func (r *FinancerRepo) GetByID(_ context.Context, id string) (*entity.Financer, error) {
	f, ok := r.Store.Financers[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (r *FinancerRepo) List(_ context.Context, filter repository.FinancerFilter) ([]*entity.Financer, int, error) {
	var out []*entity.Financer
	for _, f := range r.Store.Financers {
		if filter.DivisionID != "" && f.DivisionID != filter.DivisionID {
			continue
		}
		if filter.Status != "" && f.Status != filter.Status {
			continue
		}
		cp := *f
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *FinancerRepo) Update(_ context.Context, f *entity.Financer) error {
	if _, ok := r.Store.Financers[f.ID]; !ok {
		return fmt.Errorf("financer %s no existe", f.ID)
	}
	cp := *f
	r.Store.Financers[f.ID] = &cp
	return nil
}

func (r *FinancerRepo) Delete(_ context.Context, id string) error {
	delete(r.Store.Financers, id)
	return nil
}

func (r *FinancerRepo) ListAssignments(_ context.Context, financerID string) ([]*entity.FinancerModuleAssignment, error) {
	var out []*entity.FinancerModuleAssignment
	for _, a := range r.Store.Assignments {
		if a.FinancerID == financerID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *FinancerRepo) GetAssignment(_ context.Context, financerID, moduleID string) (*entity.FinancerModuleAssignment, error) {
	a, ok := r.Store.Assignments[PairKey(financerID, moduleID)]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *FinancerRepo) UpsertAssignment(_ context.Context, a *entity.FinancerModuleAssignment) error {
	cp := *a
	r.Store.Assignments[PairKey(a.FinancerID, a.ModuleID)] = &cp
	return nil
}

func (r *FinancerRepo) CountActiveBeneficiaries(_ context.Context, financerID string) (int, error) {
	count := 0
	for _, b := range r.Store.beneficiaries(financerID) {
		if b.Active {
			count++
		}
	}
	return count, nil
}

func (r *FinancerRepo) ListBeneficiaries(_ context.Context, financerID string) ([]*entity.FinancerBeneficiary, error) {
	return r.Store.beneficiaries(financerID), nil
}

// SetBeneficiaries fija los beneficiarios de un financiador para este store.
func (s *MemStore) SetBeneficiaries(financerID string, list []*entity.FinancerBeneficiary) {
	if s.beneficiariesMap == nil {
		s.beneficiariesMap = map[string][]*entity.FinancerBeneficiary{}
	}
	s.beneficiariesMap[financerID] = list
}

func (s *MemStore) beneficiaries(financerID string) []*entity.FinancerBeneficiary {
	return s.beneficiariesMap[financerID]
}

// ── DivisionRepository ──

// DivisionRepo fake en memoria de repository.DivisionRepository.
type DivisionRepo struct{ Store *MemStore }

var _ repository.DivisionRepository = (*DivisionRepo)(nil)

func (r *DivisionRepo) GetByID(_ context.Context, id string) (*entity.Division, error) {
	d, ok := r.Store.Divisions[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *DivisionRepo) List(_ context.Context) ([]*entity.Division, error) {
	var out []*entity.Division
	for _, d := range r.Store.Divisions {
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

func (r *DivisionRepo) ListActivations(_ context.Context, divisionID string) ([]*entity.DivisionModuleActivation, error) {
	var out []*entity.DivisionModuleActivation
	for _, a := range r.Store.Activations {
		if a.DivisionID == divisionID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *DivisionRepo) GetActivation(_ context.Context, divisionID, moduleID string) (*entity.DivisionModuleActivation, error) {
	a, ok := r.Store.Activations[PairKey(divisionID, moduleID)]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *DivisionRepo) UpsertActivation(_ context.Context, a *entity.DivisionModuleActivation) error {
	cp := *a
	r.Store.Activations[PairKey(a.DivisionID, a.ModuleID)] = &cp
	return nil
}

func (r *DivisionRepo) ListFinancerIDs(_ context.Context, divisionID string) ([]string, error) {
	var out []string
	for _, f := range r.Store.Financers {
		if f.DivisionID == divisionID {
			out = append(out, f.ID)
		}
	}
	return out, nil
}

// ── ModuleRepository ──

// ModuleRepo fake en memoria de repository.ModuleRepository.
type ModuleRepo struct{ Store *MemStore }

var _ repository.ModuleRepository = (*ModuleRepo)(nil)

func (r *ModuleRepo) Create(_ context.Context, m *entity.Module) error {
	cp := *m
	r.Store.Modules[m.ID] = &cp
	return nil
}

func (r *ModuleRepo) GetByID(_ context.Context, id string) (*entity.Module, error) {
	m, ok := r.Store.Modules[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *ModuleRepo) GetByIDs(_ context.Context, ids []string) ([]*entity.Module, error) {
	var out []*entity.Module
	for _, id := range ids {
		if m, ok := r.Store.Modules[id]; ok {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *ModuleRepo) List(_ context.Context) ([]*entity.Module, error) {
	var out []*entity.Module
	for _, m := range r.Store.Modules {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *ModuleRepo) Update(_ context.Context, m *entity.Module) error {
	cp := *m
	r.Store.Modules[m.ID] = &cp
	return nil
}

func (r *ModuleRepo) Delete(_ context.Context, id string) error {
	delete(r.Store.Modules, id)
	return nil
}

// ── PricingHistoryRepository ──

// HistoryRepo fake en memoria de repository.PricingHistoryRepository.
type HistoryRepo struct{ Store *MemStore }

var _ repository.PricingHistoryRepository = (*HistoryRepo)(nil)

func (r *HistoryRepo) Append(_ context.Context, e *entity.PricingHistoryEntry) error {
	if r.Store.FailAppend {
		return ErrAppendFallido
	}
	cp := *e
	r.Store.Ledger = append(r.Store.Ledger, &cp)
	return nil
}

func (r *HistoryRepo) ListByEntity(_ context.Context, entityType, entityID string, limit, offset int) ([]*entity.PricingHistoryEntry, int, error) {
	var matched []*entity.PricingHistoryEntry
	for _, e := range r.Store.Ledger {
		if e.EntityType == entityType && e.EntityID == entityID {
			cp := *e
			matched = append(matched, &cp)
		}
	}
	// Más recientes primero (el ledger del fake se guarda en orden de inserción).
	for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
		matched[i], matched[j] = matched[j], matched[i]
	}
	total := len(matched)
	if offset > len(matched) {
		offset = len(matched)
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

// ── TxRunner ──

// TxRunner imita la transacción: clona el estado, ejecuta fn con repos atados
// al store y restaura el snapshot si fn devuelve error.
type TxRunner struct {
	Store *MemStore
	Runs  int
}

func (r *TxRunner) Run(_ context.Context, fn func(
	financerRepo repository.FinancerRepository,
	divisionRepo repository.DivisionRepository,
	historyRepo repository.PricingHistoryRepository,
) error) error {
	r.Runs++
	snapshot := r.Store.clone()
	err := fn(
		&FinancerRepo{Store: r.Store},
		&DivisionRepo{Store: r.Store},
		&HistoryRepo{Store: r.Store},
	)
	if err != nil {
		r.Store.restore(snapshot)
		return err
	}
	return nil
}
