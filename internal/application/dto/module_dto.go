package dto

import "time"

// CreateModuleRequest entrada para crear una entrada del catálogo de módulos.
// Name y Description son mapas locale->texto; en-GB es obligatorio.
type CreateModuleRequest struct {
	Name        map[string]string `json:"name" validate:"required"`
	Description map[string]string `json:"description"`
	Category    string            `json:"category" validate:"required"`
	IsCore      bool              `json:"is_core"`
	Active      *bool             `json:"active"`
}

// UpdateModuleRequest entrada para actualizar el catálogo. IsCore no aparece:
// es inmutable tras la creación.
type UpdateModuleRequest struct {
	Name        map[string]string `json:"name"`
	Description map[string]string `json:"description"`
	Category    *string           `json:"category"`
	Active      *bool             `json:"active"`
}

// ModuleResponse salida de un módulo del catálogo con el nombre resuelto al
// locale del caller además de los mapas completos.
type ModuleResponse struct {
	ID          string            `json:"id"`
	Name        map[string]string `json:"name"`
	Description map[string]string `json:"description"`
	DisplayName string            `json:"display_name"`
	Category    string            `json:"category"`
	IsCore      bool              `json:"is_core"`
	Active      bool              `json:"active"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ModuleListResponse listado del catálogo.
type ModuleListResponse struct {
	Items []ModuleResponse `json:"items"`
}

// DivisionModuleRequest entrada de activate/deactivate-for-division.
// PricePerBeneficiary solo aplica a la activación (precio por defecto de división).
type DivisionModuleRequest struct {
	ModuleID            string `json:"module_id" validate:"required,uuid"`
	DivisionID          string `json:"division_id" validate:"required,uuid"`
	PricePerBeneficiary *int64 `json:"price_per_beneficiary" validate:"omitempty,min=0,max=999999"`
	Reason              string `json:"reason"`
}

// UpdateFinancerModulesRequest entrada de PUT /financers/{id}/modules: solo las
// directivas, sin escalares del financiador.
type UpdateFinancerModulesRequest struct {
	Modules ModuleDirectiveList `json:"modules"`
}

// FinancerModulesResponse salida de GET /financers/{id}/modules.
type FinancerModulesResponse struct {
	Modules []FinancerModuleView `json:"modules"`
}
