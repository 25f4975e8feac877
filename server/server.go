package server

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/jrsteele09/wallet-admin-console/apiclient"
	"github.com/jrsteele09/wallet-admin-console/auth"
	"github.com/jrsteele09/wallet-admin-console/internal/config"
	"github.com/jrsteele09/wallet-admin-console/sessions"
	"github.com/jrsteele09/wallet-admin-console/walletapi"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env        string // Environment (e.g., "DEV", "PROD")
	mux        *http.ServeMux
	routes     []string
	config     config.Config
	sealer     *sessions.Sealer
	client     *apiclient.Client
	api        *walletapi.API
	auth       *auth.Service
	layout     *template.Template

	clientOpts []apiclient.Option
}

type Option func(*Server)

// WithAPIClientOptions passes extra options to the wallet API client.
func WithAPIClientOptions(opts ...apiclient.Option) Option {
	return func(s *Server) {
		s.clientOpts = append(s.clientOpts, opts...)
	}
}

func New(cfg config.Config, opts ...Option) (*Server, error) {
	s := &Server{
		env:    cfg.GetEnv(),
		mux:    http.NewServeMux(),
		config: cfg,
	}
	for _, opt := range opts {
		opt(s)
	}

	sealer, err := newSealer(cfg.GetCookieSecret())
	if err != nil {
		return nil, fmt.Errorf("[Server New] cookie sealer: %w", err)
	}
	s.sealer = sealer

	clientOpts := append([]apiclient.Option{
		apiclient.WithCredentialSource(sessions.ContextSource{}),
		apiclient.WithNavigator(loginNavigator{}),
		apiclient.WithLogger(log.Logger),
	}, s.clientOpts...)
	s.client, err = apiclient.New(apiclient.Config{
		BaseURL:         cfg.GetAPIBaseURL(),
		Timeout:         cfg.GetAPITimeout(),
		ContentType:     cfg.GetAPIContentType(),
		WithCredentials: cfg.GetAPIWithCredentials(),
		Debug:           cfg.IsDev(),
	}, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("[Server New] api client: %w", err)
	}
	s.api = walletapi.New(s.client)
	s.auth = auth.NewService(s.api)

	s.layout, err = ParseTemplate("admin_layout.html")
	if err != nil {
		return nil, fmt.Errorf("[Server New] layout template: %w", err)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func newSealer(secret string) (*sessions.Sealer, error) {
	if secret != "" {
		return sessions.NewSealer([]byte(secret))
	}
	key, err := sessions.GenerateSecret()
	if err != nil {
		return nil, err
	}
	log.Warn().Msg("COOKIE_SECRET not set, sessions will not survive a restart")
	return sessions.NewSealer(key)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s", displayMethod, path)
}

// getScheme reports the scheme the browser used, honouring a proxy header.
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
