package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/studio-scheduler/internal/domain"
	"github.com/spec-kit/studio-scheduler/internal/repository"
	apperrors "github.com/spec-kit/studio-scheduler/pkg/util"
)

const tenantKey = "tenant_context"

// TenantMiddleware resolves the authenticated identity to a tenant
// context. Every protected route trusts only this resolved context; the
// role, studio and license fields are loaded from storage on each
// request, never from the client and never from a cache, because they
// are mutated by administrative workflows outside this service.
type TenantMiddleware struct {
	tokens *TokenManager
	staff  repository.StaffRepository
}

// NewTenantMiddleware constructs middleware.
func NewTenantMiddleware(tokens *TokenManager, staff repository.StaffRepository) *TenantMiddleware {
	return &TenantMiddleware{tokens: tokens, staff: staff}
}

// Handle enforces authentication and stores the resolved tenant context.
func (m *TenantMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	staff, err := m.staff.GetByID(c.Context(), claims.StaffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("staff", map[string]any{"staff_id": claims.StaffID})
		}
		return apperrors.MapError(err)
	}

	c.Locals(tenantKey, &domain.TenantContext{
		StaffID:              staff.ID,
		DisplayName:          staff.DisplayName,
		Role:                 staff.Role,
		StudioID:             staff.StudioID,
		LocationID:           staff.LocationID,
		HasAllLocationAccess: staff.HasAllLocationAccess,
		EmploymentType:       staff.EmploymentType,
		LicenseVerified:      staff.LicenseVerified,
	})
	return c.Next()
}

// TenantFromContext retrieves the resolved tenant context.
func TenantFromContext(c *fiber.Ctx) (*domain.TenantContext, bool) {
	val := c.Locals(tenantKey)
	if val == nil {
		return nil, false
	}
	tenant, ok := val.(*domain.TenantContext)
	return tenant, ok
}
