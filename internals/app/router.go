package app

import (
	middle "statuspage/internals/middleware"
	"statuspage/internals/modules/status"
	"statuspage/internals/modules/uptime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(c *Container) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middle.Logger(c.Logger))
	r.Use(middleware.Timeout(5 * time.Second))

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Mount("/status", status.Routes(c.statusHandler))
		v1.Mount("/uptime", uptime.Routes(c.uptimeHandler))
		v1.Mount("/pages", uptime.PageRoutes(c.uptimeHandler))
	})

	return r
}
