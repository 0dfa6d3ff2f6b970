package revalidate

import (
	"context"
	"fmt"

	"invoice_dashboard/pkg/logger"
)

// Target drops whatever it holds for a route.
type Target interface {
	Invalidate(ctx context.Context, path string) error
}

// RouteCache keeps the rendered body of a route until the route is invalidated.
// Every invalidation bumps the route version. A renderer reads the version
// before it loads data and stores with SetIfUnchanged, so a body rendered
// before a mutation is never cached after it.
type RouteCache interface {
	Target
	Get(ctx context.Context, path string) ([]byte, bool, error)
	Version(ctx context.Context, path string) (uint64, error)
	SetIfUnchanged(ctx context.Context, path string, body []byte, version uint64) (bool, error)
}

// Service fans an invalidation out to every target. Failures are logged and
// swallowed, the caller has already committed its write.
type Service struct {
	targets []Target
	log     logger.Logger
}

func NewService(log logger.Logger, targets ...Target) *Service {
	return &Service{targets: targets, log: log}
}

func (s *Service) RevalidatePath(ctx context.Context, path string) {
	for _, t := range s.targets {
		if err := t.Invalidate(ctx, path); err != nil {
			s.log.WithContext(ctx).Warn("route invalidation failed",
				logger.String("path", path),
				logger.String("target", fmt.Sprintf("%T", t)),
				logger.Error(err),
			)
		}
	}
	s.log.WithContext(ctx).Debug("route invalidated", logger.String("path", path), logger.Int("targets", len(s.targets)))
}
