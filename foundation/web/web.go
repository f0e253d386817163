// Package web is a thin layer over gin that lets handlers return errors
// and share one response envelope.
package web

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler handles a request inside the App.
type Handler func(c *Context) error

// Middleware wraps a Handler with extra behaviour.
type Middleware func(handler Handler) Handler

// App is the entrypoint of the application. It embeds the gin engine so raw
// gin routes (files, health checks) can still be registered on it.
type App struct {
	*gin.Engine
	mw []Middleware
}

func NewApp(mw ...Middleware) *App {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	return &App{
		Engine: engine,
		mw:     mw,
	}
}

// Handle registers handler for the method and path. Route middleware runs
// inside the application wide middleware.
func (a *App) Handle(method string, path string, handler Handler, mw ...Middleware) {
	handler = wrapMiddleware(mw, handler)
	handler = wrapMiddleware(a.mw, handler)

	a.Engine.Handle(method, path, func(gc *gin.Context) {
		c := NewContext(gc)
		if err := handler(c); err != nil {
			log.Printf("%s %s: %v", method, path, err)
		}
	})
}

func (a *App) Get(path string, handler Handler, mw ...Middleware) {
	a.Handle(http.MethodGet, path, handler, mw...)
}

func (a *App) Post(path string, handler Handler, mw ...Middleware) {
	a.Handle(http.MethodPost, path, handler, mw...)
}

func (a *App) Put(path string, handler Handler, mw ...Middleware) {
	a.Handle(http.MethodPut, path, handler, mw...)
}

func (a *App) Patch(path string, handler Handler, mw ...Middleware) {
	a.Handle(http.MethodPatch, path, handler, mw...)
}

func (a *App) Delete(path string, handler Handler, mw ...Middleware) {
	a.Handle(http.MethodDelete, path, handler, mw...)
}

// wrapMiddleware wraps handler so that mw[0] is the outermost layer.
func wrapMiddleware(mw []Middleware, handler Handler) Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		if h := mw[i]; h != nil {
			handler = h(handler)
		}
	}

	return handler
}
