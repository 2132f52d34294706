// Package backend builds the task service selected by the configuration.
package backend

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"todo/internal/api"
	"todo/internal/backend/googletasks"
	"todo/internal/backend/rest"
	"todo/internal/config"
	"todo/internal/service"
)

// New returns the service for cfg.Backend. userAgent is sent by the REST
// client.
func New(ctx context.Context, cfg *config.Config, userAgent string) (service.Service, error) {
	logger := log.FromContext(ctx)

	switch cfg.Backend {
	case config.BackendREST:
		client, err := api.New(cfg.BackendURL,
			api.WithTimeout(cfg.Timeout),
			api.WithLogger(logger),
			api.WithRequestInterceptor(api.UserAgent(userAgent)),
			api.WithRequestInterceptor(api.RequestID()),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", config.ErrInvalid, err)
		}
		logger.Debug("using rest backend", "url", client.BaseURL(), "timeout", client.Timeout())
		return rest.New(client), nil

	case config.BackendGoogleTasks:
		if !cfg.HasOAuthClient() {
			return nil, fmt.Errorf("%w: %s not found in %s", service.ErrUnauthorized, config.OAuthClientFile, cfg.Dir)
		}
		if !cfg.HasToken() {
			return nil, fmt.Errorf("%w: not logged in (run: todo login)", service.ErrUnauthorized)
		}
		client, err := googletasks.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", service.ErrUnauthorized, err)
		}
		logger.Debug("using googletasks backend")
		return client, nil
	}

	return nil, fmt.Errorf("%w: unknown backend %q", config.ErrInvalid, cfg.Backend)
}
