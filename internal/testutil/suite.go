package testutil

import (
	"context"

	"github.com/billforge/billforge/internal/config"
	"github.com/billforge/billforge/internal/logger"
	"github.com/stretchr/testify/suite"
)

// BaseServiceTestSuite provides the shared setup for service-layer
// suites: a request-scoped context, default config, a logger and a
// scripted billing client.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	cfg     *config.Configuration
	log     *logger.Logger
	billing *FakeBillingClient
}

func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.cfg = config.GetDefaultConfig()
	s.log = logger.GetLogger()
	s.billing = NewFakeBillingClient()
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.cfg
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.log
}

func (s *BaseServiceTestSuite) GetBillingClient() *FakeBillingClient {
	return s.billing
}
