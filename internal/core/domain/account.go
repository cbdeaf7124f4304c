package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset          AccountType = "ASSET"
	Liability      AccountType = "LIABILITY"
	Equity         AccountType = "EQUITY"
	Income         AccountType = "INCOME"
	ExpenseAccount AccountType = "EXPENSE"
)

// AccountRole is a semantic slot the posting engine resolves per business to
// a concrete account. The set is closed; mappings are configuration data.
type AccountRole string

const (
	RoleCash           AccountRole = "cash"
	RoleCardClearing   AccountRole = "card_clearing"
	RoleOnlineGateway  AccountRole = "online_gateway"
	RoleSalesRevenue   AccountRole = "sales_revenue"
	RoleInventoryAsset AccountRole = "inventory_asset"
	RolePayables       AccountRole = "payables"
	RoleExpenseDefault AccountRole = "expense_default"
)

// AccountRoles lists every role the reconciler may resolve.
var AccountRoles = []AccountRole{
	RoleCash,
	RoleCardClearing,
	RoleOnlineGateway,
	RoleSalesRevenue,
	RoleInventoryAsset,
	RolePayables,
	RoleExpenseDefault,
}

// Valid reports whether r is one of the known roles.
func (r AccountRole) Valid() bool {
	switch r {
	case RoleCash, RoleCardClearing, RoleOnlineGateway, RoleSalesRevenue,
		RoleInventoryAsset, RolePayables, RoleExpenseDefault:
		return true
	}
	return false
}

// Account is a ledger account belonging to exactly one business. Accounts are
// created by setup/configuration, never by the reconciliation core, and are
// immutable once referenced by a ledger entry.
type Account struct {
	AccountID   string      `json:"accountID"`  // Primary key (UUID)
	BusinessID  string      `json:"businessID"` // FK -> businesses.business_id
	Code        string      `json:"code"`       // Unique per business
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	Description string      `json:"description"`
	IsActive    bool        `json:"isActive"`
	AuditFields
}

// AccountRoleMapping binds a semantic role to an account code for one
// business. Resolution fails typed when a (business, role) pair has zero or
// more than one matching account.
type AccountRoleMapping struct {
	MappingID   string      `json:"mappingID"`
	BusinessID  string      `json:"businessID"`
	Role        AccountRole `json:"role"`
	AccountCode string      `json:"accountCode"`
	AuditFields
}
