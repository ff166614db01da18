package router

import "github.com/gin-gonic/gin"

// Module owns the routes of one resource (auth, profile, hire, ...).
// Register receives the /api group; paths are relative to it.
type Module interface {
	Register(rg *gin.RouterGroup)
}
