// Package service contains the application's business logic, sitting between
// the RPC handlers and the repositories.
package service

import (
	"context"
	"strings"

	"murmur/internal/cache"
	"murmur/internal/models"
	"murmur/internal/repository"
)

// TenantService resolves identities and tenants. It backs both the
// TenantService RPC surface and the scope middleware.
type TenantService struct {
	authRepo repository.AuthRepository
}

// NewTenantService creates a new tenant service.
func NewTenantService(authRepo repository.AuthRepository) *TenantService {
	return &TenantService{authRepo: authRepo}
}

// ResolveScope turns the development identity headers into a concrete scope.
// The user is upserted on first sight and always holds a membership in the
// tenant afterwards; an unknown tenant slug is an error.
func (s *TenantService) ResolveScope(ctx context.Context, tenantSlug, authSub string) (*models.Scope, error) {
	tenantSlug = strings.TrimSpace(tenantSlug)
	authSub = strings.TrimSpace(authSub)
	if tenantSlug == "" || authSub == "" {
		return nil, models.NewUnauthenticatedError("missing tenant or user identifier")
	}

	tenant, err := s.findTenantBySlug(ctx, tenantSlug)
	if err != nil {
		return nil, models.NewNotFoundError("tenant", tenantSlug)
	}

	user, err := s.authRepo.UpsertUser(ctx, authSub, authSub)
	if err != nil {
		return nil, err
	}
	if err := s.authRepo.EnsureMembership(ctx, tenant.ID, user.ID); err != nil {
		return nil, err
	}

	return &models.Scope{TenantID: tenant.ID, UserID: user.ID}, nil
}

// GetMe returns the acting user and all of its tenant memberships.
func (s *TenantService) GetMe(ctx context.Context, tenantSlug, authSub string) (*models.User, []models.TenantMembership, error) {
	scope, err := s.ResolveScope(ctx, tenantSlug, authSub)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.authRepo.UpsertUser(ctx, strings.TrimSpace(authSub), strings.TrimSpace(authSub))
	if err != nil {
		return nil, nil, err
	}
	memberships, err := s.authRepo.ListMemberships(ctx, scope.UserID)
	if err != nil {
		return nil, nil, err
	}
	return user, memberships, nil
}

// ResolveTenant maps a request host to a tenant: exact custom-domain match
// first, then the subdomain before the first dot as a slug guess.
func (s *TenantService) ResolveTenant(ctx context.Context, host string) (*models.Tenant, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return nil, models.NewValidationError("host is required")
	}

	tenant, err := s.authRepo.FindTenantByDomain(ctx, host)
	if err == nil {
		return tenant, nil
	}

	if idx := strings.IndexByte(host, '.'); idx > 0 {
		if tenant, err := s.findTenantBySlug(ctx, host[:idx]); err == nil {
			return tenant, nil
		}
	}
	return nil, models.NewNotFoundError("tenant", host)
}

// findTenantBySlug consults the Redis cache before the database. Tenants are
// looked up on every call, so even a short TTL removes most of the load.
func (s *TenantService) findTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	var cached models.Tenant
	if cache.GetJSON(ctx, cache.TenantKey(slug), &cached) && cached.ID != 0 {
		return &cached, nil
	}

	tenant, err := s.authRepo.FindTenantBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	cache.SetJSON(ctx, cache.TenantKey(slug), tenant, cache.TenantTTL)
	return tenant, nil
}
