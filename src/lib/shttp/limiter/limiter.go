package limiter

import (
	"net"
	"net/http"
	"strings"
	"time"
)

// Options represents the rate limit options.
type Options struct {
	// Limit is the number of requests that are limited
	// within a given time duration.
	Limit int64

	// Burst is the number of requests a visitor can perform at once.
	// Tokens are refilled at Limit / Duration per second.
	Burst int

	// Duration is the time in which the rate limiter
	// should operate.
	Duration time.Duration

	// Hash specifies the parts of the request to include
	// in the rate-limiting key. Possible values are:
	// ip, path, header:<header-name>
	Hash []string
}

// Key builds the rate-limiting key of the request from the given hash parts.
func Key(r *http.Request, hash []string) string {
	pieces := []string{}

	for _, k := range hash {
		switch {
		case k == "ip":
			pieces = append(pieces, IP(r))
		case k == "path":
			if r.URL != nil {
				pieces = append(pieces, r.URL.Path)
			}
		case strings.HasPrefix(k, "header:"):
			pieces = append(pieces, r.Header.Get(strings.TrimPrefix(k, "header:")))
		}
	}

	return strings.Join(pieces, "-")
}

// IP returns the ip address of the visitor.
func IP(r *http.Request) string {
	if r == nil {
		return ""
	}

	if forwardedFor := r.Header.Get("X-Forwarded-For"); forwardedFor != "" {
		return strings.TrimSpace(strings.Split(forwardedFor, ",")[0])
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)

	if err != nil {
		return r.RemoteAddr
	}

	if ip := net.ParseIP(host); ip != nil {
		if ipv4 := ip.To4(); ipv4 != nil {
			return ipv4.String()
		}

		return ip.String()
	}

	return host
}
