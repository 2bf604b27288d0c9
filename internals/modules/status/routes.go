package status

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/{slug}", h.GetCurrentStatus)

	return r
}

/*
- GET: /status/{slug}  -> current resolved status of a public page
	req auth : false
	body : nil
	resp : CurrentStatusResponse (+ X-Cache header)
*/
