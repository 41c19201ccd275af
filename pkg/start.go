package websubhub

import (
	"context"
	"fmt"
	"strings"

	log "github.com/asecurityteam/component-log"
	stat "github.com/asecurityteam/component-stat"
	"github.com/asecurityteam/settings/v2"
	"github.com/asecurityteam/websubhub/pkg/adaptor"
	"github.com/asecurityteam/websubhub/pkg/domain"
	"github.com/asecurityteam/websubhub/pkg/handlers/lambdafn"
	"github.com/aws/aws-lambda-go/lambda"
)

const (
	// BuildModeHTTP is the standard mode of running an HTTP server
	// that implements the hub endpoint.
	BuildModeHTTP = "http"
	// BuildModeLambda runs the official lambda server using the lambda
	// SDK. Each event names the hub operation to invoke.
	BuildModeLambda = "lambda"
)

var (
	// BuildMode determines the behavior of the Start method. There
	// are several ways to use this value. The suggested way is through
	// build variables by adding `-ldflags "-X github.com/asecurityteam/websubhub/pkg.BuildMode=<value>"`
	// to `go build` or `go run` commands. If you want to use environment variables
	// instead then you can set this variable in code before calling Start
	// like `websubhub.BuildMode=os.Getenv("MYENVVAR")`.
	//
	// Alternatively, the StartMode() method may be used if you prefer to pass in
	// parameters via code rather than toggling the global setting.
	BuildMode = BuildModeHTTP
	// LambdaStartFn starts the lambda runtime. It does not return under
	// normal operation.
	LambdaStartFn = lambda.StartHandler
)

// LambdaConfig holds the settings used only in the lambda build mode. Lambda
// events do not pass through the runhttp middleware, so the logger and stat
// client are configured here instead.
type LambdaConfig struct {
	Logger *log.Config
	Stats  *stat.Config
}

// Name of the configuration root.
func (*LambdaConfig) Name() string {
	return "lambda"
}

// LambdaComponent builds the lambda event handler for a bound hub.
type LambdaComponent struct {
	Adaptor *adaptor.Adaptor
	Logger  *log.Component
	Stats   *stat.Component
}

// NewLambdaComponent populates the component with the default logger and
// stat components.
func NewLambdaComponent(a *adaptor.Adaptor) *LambdaComponent {
	return &LambdaComponent{
		Adaptor: a,
		Logger:  log.NewComponent(),
		Stats:   stat.NewComponent(),
	}
}

// Settings generates the default configuration.
func (c *LambdaComponent) Settings() *LambdaConfig {
	return &LambdaConfig{
		Logger: c.Logger.Settings(),
		Stats:  c.Stats.Settings(),
	}
}

// New creates the lambda event handler.
func (c *LambdaComponent) New(ctx context.Context, conf *LambdaConfig) (*lambdafn.Function, error) {
	logger, err := c.Logger.New(ctx, conf.Logger)
	if err != nil {
		return nil, err
	}
	stats, err := c.Stats.New(ctx, conf.Stats)
	if err != nil {
		return nil, err
	}
	return &lambdafn.Function{
		Adaptor: c.Adaptor,
		Logger:  logger,
		Stat:    stats,
	}, nil
}

// Start runs the hub in the mode selected by BuildMode.
func Start(ctx context.Context, s settings.Source, h domain.Handler) error {
	return StartMode(ctx, s, h, BuildMode)
}

// StartMode works just like Start but allows for explicit passing of the
// build mode.
func StartMode(ctx context.Context, s settings.Source, h domain.Handler, mode string) error {
	switch {
	case strings.EqualFold(mode, BuildModeHTTP):
		return StartHTTP(ctx, s, h)
	case strings.EqualFold(mode, BuildModeLambda):
		return StartLambda(ctx, s, h)
	default:
		return fmt.Errorf("unknown build mode %s", mode)
	}
}

// StartHTTP runs the HTTP hub until the runtime receives a shutdown signal.
func StartHTTP(ctx context.Context, s settings.Source, h domain.Handler) error {
	rt, hub, err := New(ctx, s, h)
	if err != nil {
		return err
	}
	defer hub.Close()
	return rt.Run()
}

// StartLambda runs the hub as a lambda event handler.
func StartLambda(ctx context.Context, s settings.Source, h domain.Handler) error {
	hub, err := NewHub(ctx, s, h)
	if err != nil {
		return err
	}
	defer hub.Close()
	fn := new(lambdafn.Function)
	err = settings.NewComponent(ctx, prefixed(s), NewLambdaComponent(hub.Adaptor), fn)
	if err != nil {
		return err
	}
	LambdaStartFn(lambdafn.NewHandler(fn))
	return nil
}
