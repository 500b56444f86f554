package enrollment

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux and chi.Router.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Routes are the patterns registered by RegisterRoutes.
type Routes struct {
	Form     string
	Options  string
	Contract string
}

// MountPath returns the full mount path of the form route under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// RegisterRoutes registers the component routes under basePath on mux.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (Routes, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, opts)
}

// RegisterRoutesWithOptions registers the routes under basePath using a pre-built Options value.
// Callers are expected to pass an Options value produced by NewOptions (or equivalent) so defaults apply.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (Routes, error) {
	if mux == nil {
		return Routes{}, fmt.Errorf("enrollment: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	srv, err := newServer(opts)
	if err != nil {
		return Routes{}, err
	}

	routes := Routes{
		Form:     mountPath(basePath, opts.RoutePath),
		Options:  mountPath(basePath, opts.OptionsPath),
		Contract: mountPath(basePath, opts.ContractPath),
	}
	if routes.Form == routes.Options || routes.Form == routes.Contract || routes.Options == routes.Contract {
		return Routes{}, fmt.Errorf("enrollment: routes must be distinct: %+v", routes)
	}
	mux.Handle(routes.Form, srv.instrument(routes.Form, srv.serveForm))
	mux.Handle(routes.Options, srv.instrument(routes.Options, srv.serveOptions))
	mux.Handle(routes.Contract, srv.instrument(routes.Contract, srv.serveContract))
	return routes, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
