package network

import (
	"net/url"
	"strings"
)

// probeTarget returns the scheme://host[:port] to probe for raw. http and
// https URLs keep their own scheme and port; ssh and scp-style remotes are
// probed over https on host.
func probeTarget(raw, host string) string {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "https://" + host
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "https://" + host
	}
	return u.Scheme + "://" + u.Host
}
