package services

import (
	portsprov "github.com/finnconnect/finnconnect/internal/core/ports/providers"
	portsrepo "github.com/finnconnect/finnconnect/internal/core/ports/repositories"
	portssvc "github.com/finnconnect/finnconnect/internal/core/ports/services"
	"github.com/finnconnect/finnconnect/internal/platform/clock"
	"github.com/finnconnect/finnconnect/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, rateProvider portsprov.RateProvider, monzoAPI portsprov.MonzoAPI, clk clock.Clock) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, rateProvider, clk)
	container.OAuthToken = NewOAuthTokenService(repos.OAuthTokenRepo, clk)
	container.User = NewUserService(repos.UserRepo, cfg, clk)
	container.Monzo = NewMonzoService(monzoAPI, container.OAuthToken, clk, cfg.MonzoUserID, cfg.MonzoAccountID)

	return container
}

// Compile-time interface checks.
var (
	_ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)
	_ portssvc.OAuthTokenSvcFacade   = (*OAuthTokenService)(nil)
	_ portssvc.UserSvcFacade         = (*UserService)(nil)
	_ portssvc.MonzoSvcFacade        = (*MonzoService)(nil)
)
