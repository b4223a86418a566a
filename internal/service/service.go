package service

import (
	"github.com/billforge/billforge/internal/config"
	"github.com/billforge/billforge/internal/integration/billingapi"
	"github.com/billforge/billforge/internal/logger"
)

// ServiceParams bundles the dependencies shared by all services so
// constructors stay short and services can build each other.
type ServiceParams struct {
	Logger     *logger.Logger
	Config     *config.Configuration
	BillingAPI billingapi.Client
}
