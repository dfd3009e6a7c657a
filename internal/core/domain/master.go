package domain

// BusinessUnit is the tenant-like grouping all events and balances are
// partitioned by.
type BusinessUnit struct {
	UnitID string `json:"unitID"`
	Name   string `json:"name"`
	AuditFields
}

// Bank is a reference row identifying one bank a business unit may hold a
// balance account with.
type Bank struct {
	BankID string `json:"bankID"`
	Name   string `json:"name"`
	AuditFields
}
