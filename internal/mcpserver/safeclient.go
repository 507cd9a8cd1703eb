package mcpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/erraggy/serverconf/include"
)

// isBlockedIP returns true if the IP is private, loopback, link-local, or unspecified.
func isBlockedIP(ip net.IP) bool {
	return ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsUnspecified()
}

// checkHost resolves host and fails if any of its addresses is blocked.
func checkHost(ctx context.Context, host string) ([]net.IPAddr, error) {
	ips, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, err
	}
	for _, ipAddr := range ips {
		if isBlockedIP(ipAddr.IP) {
			return nil, fmt.Errorf("blocked include from private/loopback IP: %s (%s)", host, ipAddr.IP)
		}
	}
	if len(ips) == 0 {
		return nil, fmt.Errorf("no IP addresses found for host: %s", host)
	}
	return ips, nil
}

// newSafeHTTPClient creates an HTTP client that blocks requests to
// private/loopback/link-local IPs. Used by the MCP server to prevent
// SSRF through remote <include> locations in documents provided by AI agents.
func newSafeHTTPClient() *http.Client {
	dialer := &net.Dialer{Timeout: 10 * time.Second}

	return &http.Client{
		Timeout: include.DefaultTimeout,
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				host, port, err := net.SplitHostPort(addr)
				if err != nil {
					return nil, err
				}
				ips, err := checkHost(ctx, host)
				if err != nil {
					return nil, err
				}
				// Dial the first resolved address.
				return dialer.DialContext(ctx, network, net.JoinHostPort(ips[0].IP.String(), port))
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("stopped after 10 redirects")
			}
			_, err := checkHost(req.Context(), req.URL.Hostname())
			return err
		},
	}
}
