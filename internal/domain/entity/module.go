package entity

import "time"

// Categorías del catálogo de módulos.
const (
	ModuleCategoryHR            = "hr"
	ModuleCategoryCommunication = "communication"
	ModuleCategoryWellness      = "wellness"
	ModuleCategoryBenefits      = "benefits"
	ModuleCategoryEngagement    = "engagement"
)

// LocalizedText almacena traducciones locale->texto (columna JSONB name/description).
type LocalizedText map[string]string

// Module es una entrada del catálogo de módulos.
// IsCore marca los módulos incluidos en el paquete base: no se pueden desactivar
// ni tarificar por separado, y es inmutable tras la creación.
type Module struct {
	ID          string
	Name        LocalizedText
	Description LocalizedText
	Category    string
	IsCore      bool
	Active      bool // disponibilidad a nivel de catálogo
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
