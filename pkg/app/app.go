// Package app boots the storefront: it loads configuration, connects the
// backing services and assembles the HTTP handler from route callbacks.
//
//	a := app.New().
//	    Use(stores.Middleware(client)).
//	    Routes(func(r *router.Router, s *app.Services) {
//	        routes.RegisterWeb(r, routes.Deps{API: client, Pool: s.Pool, Disk: s.Disk})
//	    })
//	err := a.Serve(ctx)
package app

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shashiranjanraj/saborexpress/config"
	"github.com/shashiranjanraj/saborexpress/internal/server"
	"github.com/shashiranjanraj/saborexpress/pkg/logger"
	"github.com/shashiranjanraj/saborexpress/pkg/router"
)

// RouteFunc registers routes against the services booted for this process.
type RouteFunc func(r *router.Router, s *Services)

// Application collects the middleware and route callbacks of the process.
type Application struct {
	middlewares []router.Middleware
	routeFns    []RouteFunc
}

// New creates an empty Application.
func New() *Application {
	return &Application{}
}

// Use appends middleware that runs after the session is resolved and before
// any route. May be called more than once.
func (a *Application) Use(mws ...router.Middleware) *Application {
	a.middlewares = append(a.middlewares, mws...)
	return a
}

// Routes registers a route callback. Callbacks run in order.
func (a *Application) Routes(fn RouteFunc) *Application {
	a.routeFns = append(a.routeFns, fn)
	return a
}

// Serve boots the services, builds the handler and listens on APP_PORT until
// ctx is cancelled.
func (a *Application) Serve(ctx context.Context) error {
	svc, err := Boot(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	addr := ":" + config.AppPort()
	logger.Info("sabor: storefront starting", "addr", addr, "env", config.AppEnv(), "api", config.APIBaseURL())
	return server.Start(ctx, addr, buildHandler(a, svc))
}

// PrintRoutes writes the route table without connecting to anything.
func (a *Application) PrintRoutes(w io.Writer) error {
	r := router.New()
	svc := &Services{}
	for _, fn := range a.routeFns {
		fn(r, svc)
	}
	registerOperational(r, svc)

	infos := r.Routes()
	if len(infos) == 0 {
		fmt.Fprintln(w, "No routes registered.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "METHOD\tPATH\tNAME")
	fmt.Fprintln(tw, "------\t----\t----")
	for _, ri := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
	}
	return tw.Flush()
}
