package entity

import "time"

// Tipos de entidad y de precio del ledger de tarificación.
const (
	PricingEntityFinancer = "financer"
	PricingEntityDivision = "division"

	PriceTypeCorePackage = "core_package"
	PriceTypeModulePrice = "module_price"
)

// PricingHistoryEntry es un registro inmutable del ledger de cambios de precio.
// Se escribe una fila por cambio real (old != new); nunca se actualiza ni se borra.
type PricingHistoryEntry struct {
	ID         string
	EntityID   string  // Division o Financer
	EntityType string  // ver constantes PricingEntity*
	ModuleID   *string // nil para cambios del precio del paquete core
	OldPrice   *int64  // céntimos; nil = no había precio
	NewPrice   *int64
	PriceType  string  // ver constantes PriceType*
	ChangedBy  *string // usuario que hizo el cambio
	Reason     string
	CreatedAt  time.Time
}
