package middleware

import (
	"net/http"

	"party-paradise/internal/domain/aggregate"
	"party-paradise/pkg/errors"

	"github.com/samber/lo"
)

// RoleAuthMiddleware checks if the user has one of the required roles
func RoleAuthMiddleware(allowedRoles ...aggregate.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := GetPrincipal(r.Context())
			if !ok || principal.Role == "" {
				HandleError(w, r, errors.NewUnauthorizedError("User role not found"))
				return
			}

			if !lo.Contains(allowedRoles, principal.Role) {
				HandleError(w, r, errors.NewForbiddenError(roleMessage(allowedRoles)))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func roleMessage(roles []aggregate.UserRole) string {
	if len(roles) == 1 {
		switch roles[0] {
		case aggregate.RoleAdmin:
			return "Access denied. Admin only."
		case aggregate.RoleHost:
			return "Only hosts can perform this action"
		case aggregate.RoleVendor:
			return "Only vendors can perform this action"
		}
	}
	return "Insufficient permissions"
}

// RequireAdmin middleware that requires Admin role
func RequireAdmin(next http.Handler) http.Handler {
	return RoleAuthMiddleware(aggregate.RoleAdmin)(next)
}

// RequireVendor middleware that requires Vendor role
func RequireVendor(next http.Handler) http.Handler {
	return RoleAuthMiddleware(aggregate.RoleVendor)(next)
}

// RequireHost middleware that requires Host role
func RequireHost(next http.Handler) http.Handler {
	return RoleAuthMiddleware(aggregate.RoleHost)(next)
}
