package mapping

import (
	"github.com/insighthub/commerce-ledger/internal/core/domain"
	"github.com/insighthub/commerce-ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		BusinessID:  d.BusinessID,
		Code:        d.Code,
		Name:        d.Name,
		AccountType: models.AccountType(d.AccountType),
		Description: d.Description,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		BusinessID:  m.BusinessID,
		Code:        m.Code,
		Name:        m.Name,
		AccountType: domain.AccountType(m.AccountType),
		Description: m.Description,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainRoleMapping converts a model AccountRoleMapping to its domain form.
func ToDomainRoleMapping(m models.AccountRoleMapping) domain.AccountRoleMapping {
	return domain.AccountRoleMapping{
		MappingID:   m.MappingID,
		BusinessID:  m.BusinessID,
		Role:        domain.AccountRole(m.Role),
		AccountCode: m.AccountCode,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelRoleMapping converts a domain AccountRoleMapping to its model form.
func ToModelRoleMapping(d domain.AccountRoleMapping) models.AccountRoleMapping {
	return models.AccountRoleMapping{
		MappingID:   d.MappingID,
		BusinessID:  d.BusinessID,
		Role:        string(d.Role),
		AccountCode: d.AccountCode,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}
