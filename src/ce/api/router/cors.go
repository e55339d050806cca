package router

import (
	"net/http"
	"regexp"
	"strings"
	"sync"

	"github.com/stormkit-io/fnmanagement/src/lib/config"
)

var hostsMux sync.Mutex

var AllowedHosts = []string{}

var AllowedHeaders = []string{
	"Authorization",
	"Connection",
	"Content-Type",
	"Cache-Control",
	"Access-Control-Allow-Methods",
	"Access-Control-Allow-Origin",
	"Access-Control-Allow-Headers",
	"Access-Control-Max-Age",
	"Access-Control-Request-Headers",
	"Access-Control-Request-Method",
	"X-Request-Id",
}

var AllowedMethods = []string{
	"POST",
	"GET",
	"OPTIONS",
}

// Cors replaces the allowed hosts with the configured origins.
func Cors() []string {
	hostsMux.Lock()
	defer hostsMux.Unlock()

	hosts := append([]string{}, config.Get().AllowedOrigins...)

	if config.IsDevelopment() {
		hosts = append(hosts,
			"^https?://localhost:[0-9]+$",
		)
	}

	AllowedHosts = hosts
	return AllowedHosts
}

func WithTimeout(h http.Handler) http.Handler {
	return http.TimeoutHandler(h, config.Get().HTTPTimeouts.HandlerTimeout, "timeout")
}

// WithCors enables cors headers for the api.
func WithCors(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		hostsMux.Lock()
		hosts := AllowedHosts
		hostsMux.Unlock()

		for _, host := range hosts {
			if match, _ := regexp.MatchString(host, origin); match {
				w.Header().Add("Connection", "keep-alive")
				w.Header().Add("Access-Control-Allow-Origin", origin)
				w.Header().Add("Access-Control-Allow-Headers", strings.Join(AllowedHeaders, ","))
				w.Header().Add("Access-Control-Allow-Methods", strings.Join(AllowedMethods, ","))
				w.Header().Add("Access-Control-Max-Age", "86400")

				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusOK)
					return
				}

				break
			}
		}

		// Otherwise continue
		h.ServeHTTP(w, r)
	})
}
