package websubhub

import (
	"net/http"
	"time"

	"github.com/asecurityteam/runhttp"
	"github.com/asecurityteam/websubhub/pkg/adaptor"
	"github.com/asecurityteam/websubhub/pkg/domain"
	v1 "github.com/asecurityteam/websubhub/pkg/handlers/v1"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const defaultMaxContentBytes = 10 << 20

// RouterConfig is used to alter the behavior of the default router
// and the HTTP endpoint handlers that it manages.
type RouterConfig struct {
	// HealthCheck defines the route on which the service will respond
	// with automatic 200s. This is here to integrate with systems that
	// poll for liveliness. The default value is /healthcheck
	HealthCheck string
	// Path is the route of the hub endpoint. The default value is /hub
	Path string

	// Adaptor is the bound hub handler. There is no default for this value.
	Adaptor *adaptor.Adaptor

	// LogFn is used to extract the request logger from the request
	// context. The default value is runhttp.LoggerFromContext.
	LogFn domain.LogFn
	// StatFn is used to extract the request stat client from the
	// request context. The default value is runhttp.StatFromContext.
	StatFn domain.StatFn

	// Client contacts subscriber callbacks during intent verification.
	// The default value is http.DefaultClient.
	Client *http.Client
	// VerificationTimeout bounds each request to a subscriber callback.
	// The default value is 10s.
	VerificationTimeout time.Duration
	// ChallengeFn generates intent verification challenges. The default
	// value generates a random UUID.
	ChallengeFn func() string
	// MaxContentBytes bounds hub request bodies. The default value is 10MB.
	MaxContentBytes int64
}

func applyDefaults(conf *RouterConfig) *RouterConfig {
	if conf.HealthCheck == "" {
		conf.HealthCheck = "/healthcheck"
	}
	if conf.Path == "" {
		conf.Path = "/hub"
	}
	if conf.LogFn == nil {
		conf.LogFn = runhttp.LoggerFromContext
	}
	if conf.StatFn == nil {
		conf.StatFn = runhttp.StatFromContext
	}
	if conf.Client == nil {
		conf.Client = http.DefaultClient
	}
	if conf.VerificationTimeout == 0 {
		conf.VerificationTimeout = 10 * time.Second
	}
	if conf.MaxContentBytes == 0 {
		conf.MaxContentBytes = defaultMaxContentBytes
	}
	if conf.ChallengeFn == nil {
		conf.ChallengeFn = v1.NewChallenge
	}
	return conf
}

// NewRouter generates a mux that already has the hub endpoint bound.
// This version returns a mux from the chi project as a convenience for
// cases where custom middleware or additional routes need to be configured.
func NewRouter(conf *RouterConfig) *chi.Mux {
	conf = applyDefaults(conf)
	router := chi.NewMux()
	router.Use(middleware.Heartbeat(conf.HealthCheck))

	hub := &v1.Hub{
		Adaptor:             conf.Adaptor,
		LogFn:               conf.LogFn,
		StatFn:              conf.StatFn,
		Client:              conf.Client,
		VerificationTimeout: conf.VerificationTimeout,
		ChallengeFn:         conf.ChallengeFn,
		MaxContentBytes:     conf.MaxContentBytes,
	}

	router.Method(http.MethodPost, conf.Path, hub)
	return router
}
