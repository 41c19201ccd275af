package websubhub

import (
	"context"
	"time"

	"github.com/asecurityteam/runhttp"
	"github.com/asecurityteam/settings/v2"
	"github.com/asecurityteam/websubhub/pkg/adaptor"
	"github.com/asecurityteam/websubhub/pkg/dispatch"
	"github.com/asecurityteam/websubhub/pkg/domain"
	"github.com/asecurityteam/websubhub/pkg/invoker"
	"github.com/go-chi/chi/v5"
)

// EnvPrefix is prepended to every setting name.
const EnvPrefix = "WEBSUBHUB"

// HubConfig holds the hub settings.
type HubConfig struct {
	Path                string        `description:"Route of the hub endpoint."`
	HealthCheck         string        `description:"Route that always responds with a 200."`
	Workers             int           `description:"Number of handler workers. Zero runs every invocation on its own goroutine."`
	QueueSize           int           `description:"Invocations that may wait for a worker before new ones are rejected."`
	VerificationTimeout time.Duration `description:"Timeout for each request to a subscriber callback."`
	MaxContentBytes     int64         `description:"Largest accepted request body in bytes."`
}

// Name of the configuration root.
func (*HubConfig) Name() string {
	return "hub"
}

// Hub is a configured hub ready to be served.
type Hub struct {
	Adaptor *adaptor.Adaptor
	Router  *chi.Mux
	pool    *invoker.Pool
}

// Close releases the worker pool, if any. Queued invocations finish first.
func (h *Hub) Close() error {
	if h.pool == nil {
		return nil
	}
	return h.pool.Close()
}

// HubComponent binds a handler to the hub settings.
type HubComponent struct {
	Handler domain.Handler
}

// Settings generates the default configuration.
func (*HubComponent) Settings() *HubConfig {
	return &HubConfig{
		Path:                "/hub",
		HealthCheck:         "/healthcheck",
		VerificationTimeout: 10 * time.Second,
		QueueSize:           1024,
		MaxContentBytes:     defaultMaxContentBytes,
	}
}

// New creates the dispatcher, adaptor, and router for the handler.
func (c *HubComponent) New(_ context.Context, conf *HubConfig) (*Hub, error) {
	hub := &Hub{}
	var inv domain.Invoker = invoker.Goroutine{}
	if conf.Workers > 0 {
		hub.pool = invoker.NewPool(conf.Workers, conf.QueueSize)
		inv = hub.pool
	}
	d := dispatch.New(&dispatch.Config{Invoker: inv})
	hub.Adaptor = adaptor.New(c.Handler, d)
	hub.Router = NewRouter(&RouterConfig{
		HealthCheck:         conf.HealthCheck,
		Path:                conf.Path,
		Adaptor:             hub.Adaptor,
		VerificationTimeout: conf.VerificationTimeout,
		MaxContentBytes:     conf.MaxContentBytes,
	})
	return hub, nil
}

func prefixed(s settings.Source) settings.Source {
	return &settings.PrefixSource{Source: s, Prefix: []string{EnvPrefix}}
}

// NewHub loads the hub settings and binds the handler.
func NewHub(ctx context.Context, s settings.Source, h domain.Handler) (*Hub, error) {
	hub := new(Hub)
	err := settings.NewComponent(ctx, prefixed(s), &HubComponent{Handler: h}, hub)
	return hub, err
}

// New generates an HTTP runtime serving the hub bound to the given handler.
// The returned Hub should be closed once the runtime stops.
func New(ctx context.Context, s settings.Source, h domain.Handler) (*runhttp.Runtime, *Hub, error) {
	hub, err := NewHub(ctx, s, h)
	if err != nil {
		return nil, nil, err
	}
	rtC := runhttp.NewComponent().WithHandler(hub.Router)
	rt := new(runhttp.Runtime)
	err = settings.NewComponent(ctx, prefixed(s), rtC, rt)
	if err != nil {
		_ = hub.Close()
		return nil, nil, err
	}
	return rt, hub, nil
}
