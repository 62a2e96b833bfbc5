package middleware

import (
	"context"
	"strings"

	"murmur/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ScopeResolver resolves a (tenant slug, auth subject) pair into a concrete
// scope, upserting the user and its membership on first sight.
type ScopeResolver interface {
	ResolveScope(ctx context.Context, tenantSlug, authSub string) (*models.Scope, error)
}

// publicProcedures are reachable without identity headers.
var publicProcedures = map[string]struct{}{
	"/sns.v1.TenantService/ResolveTenant": {},
}

// ScopeRequired returns a middleware that authenticates every RPC call from
// the X-Tenant/X-User development headers. When dev headers are disabled the
// whole surface answers 401; a real identity provider is expected to replace
// this middleware in that case.
func ScopeRequired(resolver ScopeResolver, allowDevHeaders bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := publicProcedures[c.Path()]; ok {
			return c.Next()
		}

		if !allowDevHeaders {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError("dev headers disabled"))
		}

		tenantSlug := strings.TrimSpace(c.Get("X-Tenant"))
		authSub := strings.TrimSpace(c.Get("X-User"))
		if tenantSlug == "" || authSub == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError("missing X-Tenant or X-User"))
		}

		scope, err := resolver.ResolveScope(c.UserContext(), tenantSlug, authSub)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError("unknown tenant or user"))
		}

		c.Locals("scope", *scope)
		return c.Next()
	}
}

// ScopeFromLocals retrieves the scope stored by ScopeRequired. The second
// return is false when the middleware did not run (public procedure).
func ScopeFromLocals(c *fiber.Ctx) (models.Scope, bool) {
	scope, ok := c.Locals("scope").(models.Scope)
	return scope, ok
}
