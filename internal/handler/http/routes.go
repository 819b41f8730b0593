package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Init builds the router with every route and middleware of the API.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(withLogging)
	router.Use(middleware.Recoverer)
	if len(h.allowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: h.allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", traceIDHeader},
			ExposedHeaders: []string{traceIDHeader},
			MaxAge:         300,
		}))
	}
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}
	router.Use(withGzipRequests)
	router.Use(middleware.Compress(5, "application/json"))

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/", h.banner)
		r.Post("/registration", h.register)
		r.Post("/login", h.login)
	})

	// token in the Authorization header, the query string or the JSON body
	router.Group(func(r chi.Router) {
		r.Use(h.auth(tokenFromHeader, tokenFromQuery, tokenFromBody))

		r.Post("/items/new", h.createItem)
		r.Get("/items", h.listItems)
		r.Delete("/items/{id}", h.deleteItem)
		r.Post("/send", h.sendItem)
	})

	// the confirmation URL carries the recipient's token in the path
	router.With(h.auth(tokenFromPath("recipient_token"), tokenFromHeader)).
		Get("/get/{item_token}/{recipient_token}", h.claimItem)

	router.NotFound(notFound)
	router.MethodNotAllowed(methodNotAllowed(router))

	return router
}
