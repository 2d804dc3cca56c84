package app

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/saborexpress/config"
	"github.com/shashiranjanraj/saborexpress/pkg/metrics"
	"github.com/shashiranjanraj/saborexpress/pkg/middleware"
	"github.com/shashiranjanraj/saborexpress/pkg/reqid"
	"github.com/shashiranjanraj/saborexpress/pkg/response"
	"github.com/shashiranjanraj/saborexpress/pkg/router"
	"github.com/shashiranjanraj/saborexpress/pkg/session"
	"github.com/shashiranjanraj/saborexpress/pkg/storage"
)

// buildHandler wires the global middleware and every route callback.
func buildHandler(a *Application, svc *Services) http.Handler {
	r := router.New()

	opts := session.DefaultOptions()
	opts.CookieName = config.SessionCookie()
	opts.Secure = config.IsProduction()

	// Global middleware stack, outermost first:
	//  1. metrics       total latency
	//  2. recovery      panics become a 500 envelope
	//  3. request id    before anything logs
	//  4. access log    logs request_id from context
	//  5. rate limit    before touching the slot store
	//  6. session       signed cookie → per-browser slot store
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.RateLimit(config.RateLimit(), time.Minute, config.TrustProxy()))
	r.Use(session.Middleware(svc.Signer, svc.KV, opts))
	r.Use(a.middlewares...)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.MethodNotAllowed(w)
	})

	registerOperational(r, svc)
	for _, fn := range a.routeFns {
		fn(r, svc)
	}

	return r.Handler()
}

// registerOperational mounts /metrics, /healthz and, for the local disk,
// the /storage file server.
func registerOperational(r *router.Router, svc *Services) {
	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})

	if local, ok := svc.Disk.(*storage.Local); ok {
		files := http.StripPrefix("/storage", http.FileServer(http.Dir(local.Root())))
		r.Mount("/storage", "storage", files)
	}
}
