package dto

// CreateAccountRequest creates one ledger account for a business. Accounts
// are setup/configuration data, created before any posting references them.
type CreateAccountRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	AccountType string `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	Description string `json:"description"`
}

// UpsertRoleMappingRequest binds a semantic role to an account code for a
// business. Existing mappings for the same (business, role) are replaced.
type UpsertRoleMappingRequest struct {
	Role        string `json:"role" binding:"required"`
	AccountCode string `json:"accountCode" binding:"required"`
}
