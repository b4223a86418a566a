package types

const (
	HeaderTenantID      = "X-Tenant-ID"
	HeaderEnvironment   = "X-Environment-ID"
	HeaderUserID        = "X-User-ID"
	HeaderRequestID     = "X-Request-ID"
	HeaderAuthorization = "Authorization"
)
