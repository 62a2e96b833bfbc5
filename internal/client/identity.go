// Package client is the synchronization layer for the sns.v1 RPC surface.
// Each collection synchronizer owns an ordered in-memory view of one entity
// family and keeps it consistent with the server's authoritative responses.
package client

// Default development identity, matching the server's seeded demo tenant.
const (
	DefaultTenant = "acme"
	DefaultUser   = "u_alice"
)

// Identity is the tenant/user pair a synchronizer acts as. It is a plain
// value threaded through every call; there is no ambient identity.
type Identity struct {
	Tenant string
	User   string
}

// ResolveIdentity fills empty overrides with the development defaults. It is
// pure and performs no I/O.
func ResolveIdentity(tenant, user string) Identity {
	if tenant == "" {
		tenant = DefaultTenant
	}
	if user == "" {
		user = DefaultUser
	}
	return Identity{Tenant: tenant, User: user}
}
