// Package google implements the builtin Gmail, Google Calendar and Google
// Drive skills. All three share one Google integration and its OAuth token.
package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/clients"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/params"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/registry"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

var ErrIntegrationRequired = errors.New("Integration ID is required")

const (
	productGmail    = "Gmail"
	productCalendar = "Google Calendar"
	productDrive    = "Google Drive"
)

type Skills struct {
	clients clients.Factory
	// extra service options, the API endpoint in tests
	opts []option.ClientOption
}

func New(clients clients.Factory, opts ...option.ClientOption) *Skills {
	return &Skills{clients: clients, opts: opts}
}

func (s *Skills) Entries() []registry.Entry {
	var entries []registry.Entry
	entries = append(entries, s.gmailEntries()...)
	entries = append(entries, s.calendarEntries()...)
	entries = append(entries, s.driveEntries()...)
	return entries
}

func Definitions() []types.SkillDefinition {
	var defs []types.SkillDefinition
	defs = append(defs, gmailDefinitions()...)
	defs = append(defs, calendarDefinitions()...)
	defs = append(defs, driveDefinitions()...)
	return defs
}

type serviceFunc[T any] func(ctx context.Context, opts ...option.ClientOption) (T, error)

type handlerFunc[T any] func(ctx context.Context, svc T, p params.Params) (any, error)

// wrap builds the product service on top of the integration's OAuth client
// and rewrites Google API errors
func wrap[T any](s *Skills, product string, newService serviceFunc[T], fn handlerFunc[T]) registry.Handler {
	return func(ctx context.Context, in map[string]any, sctx types.SkillExecutionContext) (any, error) {
		if sctx.IntegrationID == "" {
			return nil, fmt.Errorf("%w for %s operations", ErrIntegrationRequired, product)
		}

		httpClient, err := s.clients.Google(ctx, sctx.IntegrationID)
		if err != nil {
			return nil, err
		}

		opts := append([]option.ClientOption{option.WithHTTPClient(httpClient)}, s.opts...)
		svc, err := newService(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s client: %w", product, err)
		}

		out, err := fn(ctx, svc, params.Params(in))
		if err != nil {
			return nil, rewriteError(product, err)
		}
		return out, nil
	}
}

func rewriteError(product string, err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	switch apiErr.Code {
	case http.StatusUnauthorized:
		return fmt.Errorf("%s authentication failed. Please reconnect your Google integration.", product)
	case http.StatusForbidden:
		return fmt.Errorf("Insufficient %s permissions for this operation: %s. Please reconnect your Google integration and grant the required access.", product, apiErr.Message)
	case http.StatusNotFound:
		return fmt.Errorf("%s resource not found. Please check the ID and try again.", product)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%s rate limit exceeded. Please try again in a moment.", product)
	}
	return fmt.Errorf("%s API error: %s", product, apiErr.Message)
}
