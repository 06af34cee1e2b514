package entity

import "time"

// Division agrupa financiadores (tenants) y gobierna qué módulos pueden contratar.
type Division struct {
	ID               string
	Name             string
	Country          string // código ISO 3166-1 alpha-2
	Language         string // locale por defecto de la división, ej. "fr-BE"
	CorePackagePrice *int64 // precio por defecto del paquete core en céntimos; nil = sin precio
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DivisionModuleActivation es el pivot division_module: la lista blanca de módulos
// contratables por los financiadores de la división, con su precio por defecto.
type DivisionModuleActivation struct {
	DivisionID          string
	ModuleID            string
	Active              bool
	PricePerBeneficiary *int64 // céntimos por beneficiario; nil = sin precio de división
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
