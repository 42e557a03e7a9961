package tenant

import "gorm.io/gorm"

// Scope restricts a query to one company. Every tenant-scoped repository
// method applies it with an explicit company id; nothing reads the tenant
// from ambient state.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}
