package testutil

import (
	"context"

	"github.com/billforge/billforge/internal/types"
)

// SetupContext returns a context carrying the default tenant, user and
// environment values expected by the service layer.
func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxTenantID, types.DefaultTenantID)
	ctx = context.WithValue(ctx, types.CtxUserID, types.DefaultUserID)
	ctx = context.WithValue(ctx, types.CtxEnvironmentID, "env_test")
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}
