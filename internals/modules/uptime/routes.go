package uptime

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/{monitorID}", h.GetMonitorUptime)

	return r
}

func PageRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/{slug}/uptime", h.GetPageUptime)

	return r
}

/*
- GET: /uptime/{monitorID}?days={}&tz={}  -> day-by-day history of one monitor
	req auth : false
	body : nil
	resp : HistoryResponse

- GET: /pages/{slug}/uptime?days={}&tz={} -> merged history of a page's active monitors
	req auth : false
	body : nil
	resp : HistoryResponse
*/
