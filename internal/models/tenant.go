// Package models contains data structures for the application's domain models.
package models

import "time"

// Tenant is one isolated community on the platform. All content rows carry a
// tenant id; nothing is ever queried across tenants.
type Tenant struct {
	ID        uint64         `gorm:"primaryKey" json:"id"`
	Slug      string         `gorm:"uniqueIndex;size:64;not null" json:"slug"`
	Name      string         `gorm:"size:255" json:"name"`
	Domains   []TenantDomain `gorm:"foreignKey:TenantID" json:"domains,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// TenantDomain maps a custom domain to a tenant for host-based resolution.
type TenantDomain struct {
	ID       uint64 `gorm:"primaryKey" json:"id"`
	TenantID uint64 `gorm:"index;not null" json:"tenant_id"`
	Domain   string `gorm:"uniqueIndex;size:255;not null" json:"domain"`
}

// MembershipRole defines a user's role within a tenant.
type MembershipRole string

const (
	// MembershipRoleAdmin is the tenant administrator role.
	MembershipRoleAdmin MembershipRole = "admin"
	// MembershipRoleMember is the default member role.
	MembershipRoleMember MembershipRole = "member"
)

// TenantMembership maps users to tenants and tracks role.
type TenantMembership struct {
	TenantID  uint64         `gorm:"primaryKey;autoIncrement:false" json:"tenant_id"`
	Tenant    *Tenant        `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	UserID    uint64         `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	User      *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role      MembershipRole `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
}
