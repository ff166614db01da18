package router

import "github.com/gin-gonic/gin"

// Registry collects resource modules and mounts them under one API group.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
}

func NewRegistry(engine *gin.Engine, basePath string) *Registry {
	return &Registry{Engine: engine, API: engine.Group(basePath)}
}

// Use adds middleware that runs for every module route, after the engine's global chain.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mods ...Module) {
	for _, m := range mods {
		if m != nil {
			r.modules = append(r.modules, m)
		}
	}
}

// RegisterAll mounts every module in the order added. Call it once.
func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
}

// Routes lists the mounted routes as "METHOD path", for startup logging.
func (r *Registry) Routes() []string {
	infos := r.Engine.Routes()
	out := make([]string, 0, len(infos))
	for _, ri := range infos {
		out = append(out, ri.Method+" "+ri.Path)
	}
	return out
}
