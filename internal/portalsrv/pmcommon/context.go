// Package pmcommon provides context management utilities for the portal
// service: the organisation scope, the authenticated user, and the helpers
// shared by the managers and the db layer.
package pmcommon

import (
	"context"

	"github.com/google/uuid"
)

// OrgId identifies a property-management organisation. All rows in the
// database are scoped by it.
type OrgId string

// Role is the portal role of an authenticated user.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleTenant Role = "tenant"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleTenant
}

// ctxKeyType represents the type for all context keys
type ctxKeyType string

const (
	ctxOrgIdKey       ctxKeyType = "PortalOrgId"
	ctxUserContextKey ctxKeyType = "PortalUserContext"
	ctxTestContextKey ctxKeyType = "PortalTestContext"
)

// UserContext represents the context of an authenticated user.
type UserContext struct {
	// UserID is the unique identifier for the user
	UserID uuid.UUID
	// Email is the login email of the user
	Email string
	// Role is the portal role of the user
	Role Role
}

// SetOrgIdInContext sets the organisation ID in the provided context.
func SetOrgIdInContext(ctx context.Context, orgId OrgId) context.Context {
	return context.WithValue(ctx, ctxOrgIdKey, orgId)
}

// OrgIdFromContext retrieves the organisation ID from the provided context.
func OrgIdFromContext(ctx context.Context) OrgId {
	if orgId, ok := ctx.Value(ctxOrgIdKey).(OrgId); ok {
		return orgId
	}
	return ""
}

// SetUserContext sets the user context in the provided context.
func SetUserContext(ctx context.Context, uc *UserContext) context.Context {
	return context.WithValue(ctx, ctxUserContextKey, uc)
}

// GetUserContext retrieves the user context from the provided context.
func GetUserContext(ctx context.Context) *UserContext {
	if uc, ok := ctx.Value(ctxUserContextKey).(*UserContext); ok {
		return uc
	}
	return nil
}

// IsAdmin reports whether the context carries an admin user.
func IsAdmin(ctx context.Context) bool {
	uc := GetUserContext(ctx)
	return uc != nil && uc.Role == RoleAdmin
}

// SetTestContext sets the test context in the provided context.
func SetTestContext(ctx context.Context, isTest bool) context.Context {
	return context.WithValue(ctx, ctxTestContextKey, isTest)
}

// TestContextFromContext retrieves the test context from the provided context.
func TestContextFromContext(ctx context.Context) bool {
	if testContext, ok := ctx.Value(ctxTestContextKey).(bool); ok {
		return testContext
	}
	return false
}
