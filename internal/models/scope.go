package models

// Scope is the resolved request context: which tenant's data is being acted
// on and which user is acting. Derived from the identity headers once per
// request; never trusted from the payload.
type Scope struct {
	TenantID uint64
	UserID   uint64
}
