package server

import (
	"murmur/internal/sns"

	"github.com/gofiber/fiber/v2"
)

// GetMe returns the acting user and its tenant memberships. The scope
// middleware has already upserted the user, so this is mostly a read.
func (s *Server) GetMe(c *fiber.Ctx) error {
	var req sns.GetMeRequest
	if err := decodeRequest(c, &req); err != nil {
		return nil
	}

	tenantSlug := c.Get(sns.HeaderTenant)
	authSub := c.Get(sns.HeaderUser)

	user, memberships, err := s.tenantService.GetMe(c.UserContext(), tenantSlug, authSub)
	if err != nil {
		return respondError(c, err)
	}

	resp := sns.GetMeResponse{
		UserID:      user.ID,
		DisplayName: user.DisplayName,
		Memberships: make([]*sns.TenantMembership, 0, len(memberships)),
	}
	for _, m := range memberships {
		wm := &sns.TenantMembership{TenantID: m.TenantID, Role: string(m.Role)}
		if m.Tenant != nil {
			wm.TenantSlug = m.Tenant.Slug
		}
		resp.Memberships = append(resp.Memberships, wm)
	}
	return c.JSON(resp)
}

// ResolveTenant maps a request host to a tenant. Public: it runs before any
// identity exists.
func (s *Server) ResolveTenant(c *fiber.Ctx) error {
	var req sns.ResolveTenantRequest
	if err := decodeRequest(c, &req); err != nil {
		return nil
	}

	host := req.Host
	if host == "" {
		host = c.Hostname()
	}

	tenant, err := s.tenantService.ResolveTenant(c.UserContext(), host)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sns.ResolveTenantResponse{TenantID: tenant.ID, Slug: tenant.Slug})
}
