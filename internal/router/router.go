// Package router sets up the gin engine with all middlewares and routes.
package router

import (
	"net/http"

	"github.com/expense-tracker/backend/internal/controllers/healthz"
	v1 "github.com/expense-tracker/backend/internal/controllers/v1"
	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ryanuber/go-glob"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

// Router sets up the router, its middlewares and all routes.
func Router(co v1.Controller) *gin.Engine {
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		// Latency, method, path and status are added by the middleware itself
		logger.WithLogger(func(c *gin.Context, _ zerolog.Logger) zerolog.Logger {
			return log.Logger.With().
				Str("request-id", requestid.Get(c)).
				Logger()
		})))

	r.Use(cors.New(corsConfig(co)))

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(_, _, _ string, _ int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	if co.Config.EnablePprof {
		pprof.Register(r)
	}

	r.GET("", GetRoot)
	r.OPTIONS("", OptionsRoot)
	r.GET("/version", GetVersion)
	r.OPTIONS("/version", OptionsVersion)

	healthz.RegisterRoutes(r.Group("/healthz"))

	apiV1 := r.Group("/v1")
	apiV1.GET("", GetV1)
	apiV1.OPTIONS("", OptionsV1)

	v1.RegisterRoutes(co, apiV1)

	return r
}

// corsConfig builds the CORS settings. The frontend is always allowed, the
// patterns from the configuration extend the list. Patterns may contain "*".
func corsConfig(co v1.Controller) cors.Config {
	config := cors.DefaultConfig()
	config.AllowMethods = []string{"OPTIONS", "GET", "POST", "PUT", "PATCH", "DELETE"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true

	config.AllowOriginFunc = func(origin string) bool {
		if origin == co.Config.FrontendURL {
			return true
		}

		for _, pattern := range co.Config.CORSAllowOrigins {
			if glob.Glob(pattern, origin) {
				return true
			}
		}

		return false
	}

	return config
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Healthz string `json:"healthz" example:"https://example.com/healthz"`
	Version string `json:"version" example:"https://example.com/version"`
	V1      string `json:"v1" example:"https://example.com/v1"`
}

// @Summary		API root
// @Description	Entrypoint for the API, listing all endpoints
// @Tags			General
// @Success		200	{object}	RootResponse
// @Router			/ [get]
func GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Healthz: "/healthz",
			Version: "/version",
			V1:      "/v1",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/ [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

type VersionResponse struct {
	Data VersionObject `json:"data"`
}

type VersionObject struct {
	Version string `json:"version" example:"1.1.0"`
}

// @Summary		API version
// @Description	Returns the software version of the API
// @Tags			General
// @Success		200	{object}	VersionResponse
// @Router			/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/version [options]
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

type V1Response struct {
	Links V1Links `json:"links"`
}

type V1Links struct {
	Signup              string `json:"signup" example:"https://example.com/v1/signup"`
	Login               string `json:"login" example:"https://example.com/v1/login"`
	Expenses            string `json:"expenses" example:"https://example.com/v1/expenses"`
	Categories          string `json:"categories" example:"https://example.com/v1/categories"`
	PendingTransactions string `json:"pendingTransactions" example:"https://example.com/v1/pending-transactions"`
	Export              string `json:"export" example:"https://example.com/v1/export"`
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			General
// @Success		200	{object}	V1Response
// @Router			/v1 [get]
func GetV1(c *gin.Context) {
	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Signup:              "/v1/signup",
			Login:               "/v1/login",
			Expenses:            "/v1/expenses",
			Categories:          "/v1/categories",
			PendingTransactions: "/v1/pending-transactions",
			Export:              "/v1/export",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
