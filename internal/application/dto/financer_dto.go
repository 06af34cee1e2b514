package dto

import (
	"bytes"
	"encoding/json"
	"time"
)

// CreateFinancerRequest entrada para crear un financiador.
type CreateFinancerRequest struct {
	Name                string   `json:"name" validate:"required,min=1,max=255"`
	DivisionID          string   `json:"division_id" validate:"required,uuid"`
	ExternalID          *string  `json:"external_id"`
	Timezone            *string  `json:"timezone"`
	RegistrationNumber  *string  `json:"registration_number"`
	RegistrationCountry *string  `json:"registration_country" validate:"omitempty,len=2"`
	Website             *string  `json:"website" validate:"omitempty,url"`
	IBAN                *string  `json:"iban"`
	BIC                 *string  `json:"bic"`
	VATNumber           *string  `json:"vat_number"`
	CompanyNumber       *string  `json:"company_number"`
	RepresentativeID    *string  `json:"representative_id" validate:"omitempty,uuid"`
	AvailableLanguages  []string `json:"available_languages"`
	CorePackagePrice    *int64   `json:"core_package_price" validate:"omitempty,min=0,max=9999999"`
}

// UpdateFinancerRequest entrada de PUT /financers/{id}. Todos los escalares son
// opcionales (puntero nil = no tocar). El campo modules distingue tres estados:
// ausente, lista vacía/null y lista poblada (ver ModuleDirectiveList).
type UpdateFinancerRequest struct {
	Name                *string             `json:"name"`
	DivisionID          *string             `json:"division_id"`
	ExternalID          *string             `json:"external_id"`
	Timezone            *string             `json:"timezone"`
	RegistrationNumber  *string             `json:"registration_number"`
	RegistrationCountry *string             `json:"registration_country"`
	Website             *string             `json:"website"`
	IBAN                *string             `json:"iban"`
	BIC                 *string             `json:"bic"`
	VATNumber           *string             `json:"vat_number"`
	CompanyNumber       *string             `json:"company_number"`
	RepresentativeID    *string             `json:"representative_id"`
	Active              *bool               `json:"active"`
	Status              *string             `json:"status"`
	AvailableLanguages  []string            `json:"available_languages"`
	CorePackagePrice    *int64              `json:"core_package_price"`
	Modules             ModuleDirectiveList `json:"modules"`

	// corePackagePriceSent distingue "core_package_price": null de la ausencia
	// del campo; se resuelve en UnmarshalJSON.
	corePackagePriceSent bool
}

// CorePackagePriceSent informa si el campo core_package_price venía en el body
// (aunque fuera null, que significa "borrar el precio").
func (r *UpdateFinancerRequest) CorePackagePriceSent() bool {
	return r.corePackagePriceSent
}

// UnmarshalJSON detecta la presencia del campo core_package_price además del
// decodificado normal. Sin esto, null y ausente serían indistinguibles y no se
// podría borrar un precio existente.
func (r *UpdateFinancerRequest) UnmarshalJSON(data []byte) error {
	type alias UpdateFinancerRequest
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = UpdateFinancerRequest(a)

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	_, r.corePackagePriceSent = keys["core_package_price"]
	return nil
}

// ModuleDirective es un elemento de la lista modules: el estado final deseado de
// un módulo para el financiador. Active es obligatorio; Promoted y
// PricePerBeneficiary pueden omitirse (atajo de desactivación: {id, active:false}).
type ModuleDirective struct {
	ID                  string `json:"id"`
	Active              *bool  `json:"active"`
	Promoted            *bool  `json:"promoted"`
	PricePerBeneficiary *int64 `json:"price_per_beneficiary"`
}

// ModuleDirectiveList modela el estado triple del campo modules:
//   - ausente en el body        -> Present=false
//   - "modules": null           -> Present=true, Items=nil (se trata como ausente)
//   - "modules": []             -> Present=true, Items vacío (también sin efecto)
//   - "modules": [...]          -> Present=true, Items con directivas
//
// Solo HasDirectives() dispara el procesamiento de módulos.
type ModuleDirectiveList struct {
	Present bool
	Items   []ModuleDirective
}

// HasDirectives informa si hay al menos una directiva que procesar.
func (l ModuleDirectiveList) HasDirectives() bool {
	return l.Present && len(l.Items) > 0
}

// UnmarshalJSON marca Present y decodifica las directivas. null deja Items=nil.
func (l *ModuleDirectiveList) UnmarshalJSON(data []byte) error {
	l.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		l.Items = nil
		return nil
	}
	return json.Unmarshal(data, &l.Items)
}

// MarshalJSON serializa solo las directivas (Present es metadato del request).
func (l ModuleDirectiveList) MarshalJSON() ([]byte, error) {
	if !l.Present || l.Items == nil {
		return []byte("null"), nil
	}
	return json.Marshal(l.Items)
}

// FinancerModuleView es la anotación de un módulo en la respuesta del financiador:
// el estado del pivot del financiador, con fallback "inactivo, sin promoción, sin
// precio" para módulos activos en la división que el financiador nunca asignó.
// Los módulos core nunca aparecen en esta vista.
type FinancerModuleView struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Category            string `json:"category"`
	Active              bool   `json:"active"`
	Promoted            bool   `json:"promoted"`
	PricePerBeneficiary *int64 `json:"price_per_beneficiary"`
}

// FinancerResponse salida de un financiador. Modules solo se incluye cuando el
// request traía directivas (o en los endpoints que muestran módulos); nil omite
// la clave por completo, distinguiendo "no solicitado" de "vacío".
type FinancerResponse struct {
	ID                  string                `json:"id"`
	Name                string                `json:"name"`
	DivisionID          string                `json:"division_id"`
	ExternalID          *string               `json:"external_id"`
	Timezone            *string               `json:"timezone"`
	RegistrationNumber  *string               `json:"registration_number"`
	RegistrationCountry *string               `json:"registration_country"`
	Website             *string               `json:"website"`
	IBAN                *string               `json:"iban"`
	BIC                 *string               `json:"bic"`
	VATNumber           *string               `json:"vat_number"`
	CompanyNumber       *string               `json:"company_number"`
	RepresentativeID    *string               `json:"representative_id"`
	Active              bool                  `json:"active"`
	Status              string                `json:"status"`
	AvailableLanguages  []string              `json:"available_languages"`
	CorePackagePrice    *int64                `json:"core_package_price"`
	CreatedAt           time.Time             `json:"created_at"`
	UpdatedAt           time.Time             `json:"updated_at"`
	Modules             *[]FinancerModuleView `json:"modules,omitempty"`
}

// FinancerListResponse lista paginada de financiadores.
type FinancerListResponse struct {
	Items []FinancerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ToggleFinancerActiveRequest entrada de PUT /financers/{id}/toggle-active.
// Active nil significa "invertir el estado actual".
type ToggleFinancerActiveRequest struct {
	Active *bool `json:"active"`
}

// SetCorePriceRequest entrada de PUT /financers/{id}/core-price.
type SetCorePriceRequest struct {
	CorePackagePrice *int64 `json:"core_package_price" validate:"omitempty,min=0,max=9999999"`
	Reason           string `json:"reason"`
}
