package entity

import "time"

// Estados del financiador.
const (
	FinancerStatusActive   = "active"
	FinancerStatusPending  = "pending"
	FinancerStatusArchived = "archived"
)

// Financer es la entidad facturable (tenant) que activa módulos para sus beneficiarios.
// Pertenece a una Division, que limita qué módulos puede contratar.
type Financer struct {
	ID                  string
	Name                string
	DivisionID          string
	ExternalID          *string // JSON con identificadores externos (SIRH, ERP)
	Timezone            *string
	RegistrationNumber  *string
	RegistrationCountry *string // código ISO 3166-1 alpha-2
	Website             *string
	IBAN                *string
	BIC                 *string
	VATNumber           *string
	CompanyNumber       *string
	RepresentativeID    *string // usuario representante
	Active              bool
	Status              string // ver constantes FinancerStatus*
	AvailableLanguages  []string
	CorePackagePrice    *int64 // céntimos; sobreescribe el precio de la división; nil = hereda
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// FinancerModuleAssignment es el pivot financer_module: el estado contratado de un
// módulo para un financiador. La ausencia de fila significa "nunca asignado", que es
// distinto de Active=false. Las filas no se borran: desactivar pone Active=false y
// PricePerBeneficiary=nil.
type FinancerModuleAssignment struct {
	FinancerID          string
	ModuleID            string
	Active              bool
	Promoted            bool
	PricePerBeneficiary *int64 // céntimos por beneficiario; siempre nil para módulos core
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// FinancerBeneficiary es el pivot financer_users: la ventana de afiliación de un
// beneficiario a un financiador. From/To delimitan el periodo facturable.
type FinancerBeneficiary struct {
	ID         string
	FinancerID string
	UserID     string
	Active     bool
	From       time.Time
	To         *time.Time // nil = afiliación vigente
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
