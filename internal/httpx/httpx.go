package httpx

import (
	"net"
	"net/http"
	"time"
)

// New returns an http.Client with a tuned transport. The upstream quote API
// is slow to answer under throttling, so the response header timeout stays
// generous relative to the dial timeout.
func New(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 3 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		ForceAttemptHTTP2:     true,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   3 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: 8 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}
