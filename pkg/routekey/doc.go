// Package routekey routes HTTP requests to records by slug.
//
// Bind is chi middleware that loads the record named by a URL parameter:
//
//	r := chi.NewRouter()
//	r.Route("/articles/{slug}", func(r chi.Router) {
//		r.Use(routekey.Bind(repo, "slug"))
//		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
//			rec, _ := routekey.FromContext(r.Context())
//			json.NewEncoder(w).Encode(rec)
//		})
//	})
//
// Unknown slugs answer 404 and storage errors 500; WithErrorHandler replaces
// both responses. With WithCanonicalRedirect, a lookup that matched through a
// different case ("/articles/Slug-Test") redirects to the stored spelling.
package routekey
