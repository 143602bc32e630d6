package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Mount prefixes of the API routers.
const (
	PrefixUsers  = "/api/users"
	PrefixTweets = "/api/tweets"
	PrefixCSRF   = "/api/csrf"
)

// Mount binds a router to a path prefix.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// matches reports whether path is the prefix itself or lies below it.
// Matching is case-sensitive.
func (m Mount) matches(path string) bool {
	return path == m.Prefix || strings.HasPrefix(path, m.Prefix+"/")
}

type mounted struct {
	Mount
	mux *chi.Mux
}

// dispatchStage hands the request to the first mount whose prefix matches.
// The router sees paths relative to its prefix. A claimed request never
// reaches the fallback: unknown sub-paths and methods of a router answer
// with the not-found envelope, and router errors are rendered here.
func dispatchStage(mounts []Mount) Stage {
	routes := make([]mounted, 0, len(mounts))
	for _, m := range mounts {
		if m.Handler == nil {
			continue
		}

		mux := chi.NewRouter()
		mux.NotFound(Route(notFound))
		mux.MethodNotAllowed(Route(notFound))
		mux.Mount(m.Prefix, m.Handler)

		routes = append(routes, mounted{Mount: m, mux: mux})
	}

	return Stage{
		Name: StageDispatch,
		Wrap: func(next http.Handler) HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) error {
				for _, m := range routes {
					if !m.matches(r.URL.Path) {
						continue
					}

					r, rc := ensureRequestContext(r)
					rc.err = nil
					m.mux.ServeHTTP(w, r)
					return rc.takeErr()
				}

				next.ServeHTTP(w, r)
				return nil
			}
		},
	}
}

// notFound answers unknown sub-paths and unsupported methods the same way
// as paths outside every prefix.
func notFound(http.ResponseWriter, *http.Request) error {
	return errNotFound
}
