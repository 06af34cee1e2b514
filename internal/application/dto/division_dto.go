package dto

import "time"

// DivisionResponse salida de una división.
type DivisionResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Country          string    `json:"country"`
	Language         string    `json:"language"`
	CorePackagePrice *int64    `json:"core_package_price"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DivisionListResponse listado de divisiones.
type DivisionListResponse struct {
	Items []DivisionResponse `json:"items"`
}

// PricingHistoryEntryResponse una entrada del ledger de precios.
type PricingHistoryEntryResponse struct {
	ID         string    `json:"id"`
	EntityID   string    `json:"entity_id"`
	EntityType string    `json:"entity_type"`
	ModuleID   *string   `json:"module_id"`
	OldPrice   *int64    `json:"old_price"`
	NewPrice   *int64    `json:"new_price"`
	PriceType  string    `json:"price_type"`
	ChangedBy  *string   `json:"changed_by"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}

// PricingHistoryListResponse listado paginado del ledger (más recientes primero).
type PricingHistoryListResponse struct {
	Items []PricingHistoryEntryResponse `json:"items"`
	Page  PageResponse                  `json:"page"`
}

// FinancerMetricsResponse métricas de un financiador.
type FinancerMetricsResponse struct {
	FinancerID              string `json:"financer_id"`
	ActiveBeneficiaries     int    `json:"active_beneficiaries"`
	ActiveModules           int    `json:"active_modules"`
	MonthlyRevenueCents     int64  `json:"monthly_revenue_cents"`
	MonthlyRevenueFormatted string `json:"monthly_revenue_formatted"` // ej. "1234.50 EUR"
}
