package gateway

import (
	"context"
	"errors"

	"golang.org/x/sync/singleflight"

	"github.com/turnos-app/turnos/internal/ports"
)

type sharedRefresher interface {
	refresh(ctx context.Context, refreshToken string) (access string, shared bool, err error)
}

type plainRefresher struct{ r ports.TokenRefresher }

func (p plainRefresher) refresh(ctx context.Context, token string) (string, bool, error) {
	access, err := p.r.Refresh(ctx, token)
	return access, false, err
}

// Deduper collapses concurrent refreshes of the same refresh token into one call.
// Share a single Deduper across gateways that serve the same sessions.
type Deduper struct {
	r     ports.TokenRefresher
	group singleflight.Group
}

var _ ports.TokenRefresher = (*Deduper)(nil)

// NewDeduper wraps r.
func NewDeduper(r ports.TokenRefresher) *Deduper {
	return &Deduper{r: r}
}

// Refresh implements ports.TokenRefresher.
func (d *Deduper) Refresh(ctx context.Context, refreshToken string) (string, error) {
	access, _, err := d.refresh(ctx, refreshToken)
	return access, err
}

// refresh runs the shared call detached from the first caller's cancellation
// so one abandoned request does not fail the others waiting on it.
func (d *Deduper) refresh(ctx context.Context, refreshToken string) (string, bool, error) {
	v, err, shared := d.group.Do(refreshToken, func() (any, error) {
		return d.r.Refresh(context.WithoutCancel(ctx), refreshToken)
	})
	if err != nil {
		return "", shared, err
	}
	access, ok := v.(string)
	if !ok {
		return "", shared, errors.New("unexpected refresh result")
	}
	return access, shared, nil
}
