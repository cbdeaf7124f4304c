package models

// AccountType mirrors the domain account classification at the storage layer.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Account represents a ledger account row.
type Account struct {
	AccountID   string      `db:"account_id"`
	BusinessID  string      `db:"business_id"`
	Code        string      `db:"code"`
	Name        string      `db:"name"`
	AccountType AccountType `db:"account_type"`
	Description string      `db:"description"`
	IsActive    bool        `db:"is_active"`
	AuditFields
}

// AccountRoleMapping represents one row of the role configuration table.
type AccountRoleMapping struct {
	MappingID   string `db:"mapping_id"`
	BusinessID  string `db:"business_id"`
	Role        string `db:"role"`
	AccountCode string `db:"account_code"`
	AuditFields
}
