// Package router mounts the ShopDesk HTTP API. Routes are declared per
// area as DomainGroups and mounted by a Router under /api/<version>.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar mounts its routes on a parent group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

type RouterOption func(*Router)

// WithAPIVersion sets the version segment of the base path (default v1)
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) { r.apiVersion = version }
}

func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, apiVersion: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register queues registrars for Setup
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

func (r *Router) BasePath() string {
	return "/api/" + r.apiVersion
}

// Setup mounts every registered group on the engine
func (r *Router) Setup() {
	base := r.engine.Group(r.BasePath())
	for _, reg := range r.registrars {
		reg.RegisterRoutes(base)
	}
}

type route struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// DomainGroup is the declaration of one API area: a prefix, the
// middleware guarding it, its routes and nested groups. Nil handlers are
// dropped everywhere, so optional middleware can be passed as is.
type DomainGroup struct {
	name       string
	prefix     string
	middleware []gin.HandlerFunc
	routes     []route
	children   []*DomainGroup
}

func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

func (g *DomainGroup) Name() string { return g.name }

func (g *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	g.middleware = append(g.middleware, withoutNil(middleware)...)
	return g
}

func (g *DomainGroup) GET(path string, h ...gin.HandlerFunc) *DomainGroup {
	return g.add(http.MethodGet, path, h)
}

func (g *DomainGroup) POST(path string, h ...gin.HandlerFunc) *DomainGroup {
	return g.add(http.MethodPost, path, h)
}

func (g *DomainGroup) PUT(path string, h ...gin.HandlerFunc) *DomainGroup {
	return g.add(http.MethodPut, path, h)
}

func (g *DomainGroup) PATCH(path string, h ...gin.HandlerFunc) *DomainGroup {
	return g.add(http.MethodPatch, path, h)
}

func (g *DomainGroup) DELETE(path string, h ...gin.HandlerFunc) *DomainGroup {
	return g.add(http.MethodDelete, path, h)
}

func (g *DomainGroup) add(method, path string, h []gin.HandlerFunc) *DomainGroup {
	g.routes = append(g.routes, route{method: method, path: path, handlers: withoutNil(h)})
	return g
}

// Group declares a nested group. It inherits the parent's middleware and
// prefix when mounted.
func (g *DomainGroup) Group(name, prefix string) *DomainGroup {
	child := NewDomainGroup(name, prefix)
	g.children = append(g.children, child)
	return child
}

func (g *DomainGroup) RegisterRoutes(parent *gin.RouterGroup) {
	rg := parent.Group(g.prefix, g.middleware...)
	for _, rt := range g.routes {
		rg.Handle(rt.method, rt.path, rt.handlers...)
	}
	for _, child := range g.children {
		child.RegisterRoutes(rg)
	}
}

// RouteCount counts the routes of g and all nested groups
func (g *DomainGroup) RouteCount() int {
	n := len(g.routes)
	for _, child := range g.children {
		n += child.RouteCount()
	}
	return n
}

func withoutNil(handlers []gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}
