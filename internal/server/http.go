package server

import (
	"net/http"
	"strings"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// HTTPHandler returns the streamable HTTP binding mounted at /mcp, wrapped
// in bearer auth when a token is configured.
func (s *Server) HTTPHandler(authToken string) http.Handler {
	streamable := mcpserver.NewStreamableHTTPServer(s.mcp,
		mcpserver.WithEndpointPath("/mcp"),
	)

	mux := http.NewServeMux()
	mux.Handle("/mcp", streamable)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if authToken == "" {
		return mux
	}
	return bearerAuth(authToken, mux)
}

// ServeHTTP runs the HTTP transport on addr until the listener fails.
func (s *Server) ServeHTTP(addr, authToken string) error {
	s.logger.Info("serving over http", "addr", addr, "auth", authToken != "")
	return http.ListenAndServe(addr, s.HTTPHandler(authToken))
}

// bearerAuth rejects requests without a bearer token (401) and requests
// with the wrong token (403). The health endpoint stays open.
func bearerAuth(token string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" {
			next.ServeHTTP(w, r)
			return
		}

		auth := r.Header.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			http.Error(w, "Missing bearer token", http.StatusUnauthorized)
			return
		}
		if strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")) != token {
			http.Error(w, "Invalid token", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
