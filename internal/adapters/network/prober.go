package network

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"gitget/internal/domain"
	"gitget/internal/ports"
)

// DefaultTimeout bounds a single reachability check
const DefaultTimeout = 5 * time.Second

// Prober checks a repository host with an HTTP HEAD request
type Prober struct {
	client *http.Client
}

// Ensure Prober implements RemoteProber
var _ ports.RemoteProber = (*Prober)(nil)

// NewProber returns a prober using DefaultTimeout
func NewProber() *Prober {
	return &Prober{client: &http.Client{Timeout: DefaultTimeout}}
}

// Reachable sends HEAD to the host serving url. Any HTTP answer counts;
// only transport failures are reported as ErrRemoteUnreachable.
func (p *Prober) Reachable(ctx context.Context, url string) error {
	ref, err := domain.ParseRepoRef(url)
	if err != nil {
		return err
	}
	target := probeTarget(url, ref.Host)

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrRemoteUnreachable, target, err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrRemoteUnreachable, target, err)
	}
	resp.Body.Close()
	return nil
}
