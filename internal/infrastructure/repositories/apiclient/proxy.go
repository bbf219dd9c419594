package apiclient

import (
	"fmt"
	"net/http"
	"net/url"
	"os"

	"golang.org/x/net/http/httpproxy"
)

const proxyOverrideEnv = "HTTPS_PROXY"

// ProxyFunc returns an http.Transport proxy selector bound to the base URL.
// The environment is read again for every request.
func ProxyFunc(baseURL string) func(*http.Request) (*url.URL, error) {
	return func(_ *http.Request) (*url.URL, error) {
		return resolveProxy(baseURL)
	}
}

// resolveProxy prefers an explicit HTTPS_PROXY and otherwise falls back to
// the proxy the environment resolves for the base URL, if any.
func resolveProxy(baseURL string) (*url.URL, error) {
	if override := os.Getenv(proxyOverrideEnv); override != "" {
		proxyURL, err := url.Parse(override)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", proxyOverrideEnv, override, err)
		}
		return proxyURL, nil
	}

	target, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	return httpproxy.FromEnvironment().ProxyFunc()(target)
}
