package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/apihelpers"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/apihelpers/middlewares"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/services/catalog-api/apihandlers"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var conf CatalogApiConfig

func main() {
	// Start webserver
	router := gin.New()
	router.Use(gin.Recovery(), middlewares.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     conf.GinConfig.AllowOrigins,
		AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Content-Length", middlewares.HeaderRequestID},
		ExposeHeaders:    []string{"Authorization", "Content-Type", "Content-Length", middlewares.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add handlers
	router.GET("/", apihandlers.HealthCheckHandle)
	apiRoot := router.Group("/api")

	apiHandlers := apihandlers.NewHTTPHandler(
		userManagementService,
		catalogManager,
		tokenService,
		globalInfosDBService,
	)
	apiHandlers.AddRoutes(apiRoot)

	if conf.GinConfig.DebugMode {
		if err := apihelpers.WriteRoutesToFile(router, "catalog-api-routes.txt"); err != nil {
			slog.Warn("could not write routes file", slog.String("error", err.Error()))
		}
	}

	// Start the server
	slog.Info("Starting Catalog API on port " + conf.GinConfig.Port)
	if !conf.GinConfig.MTLS.Use {
		err := router.Run(":" + conf.GinConfig.Port)
		if err != nil {
			slog.Error("Exited Catalog API", slog.String("error", err.Error()))
			return
		}
	} else {
		// Create tls config for mutual TLS
		tlsConfig, err := apihelpers.LoadTLSConfig(conf.GinConfig.MTLS.CertificatePaths)
		if err != nil {
			slog.Error("Error loading TLS config.", slog.String("error", err.Error()))
			return
		}

		server := &http.Server{
			Addr:      ":" + conf.GinConfig.Port,
			Handler:   router,
			TLSConfig: tlsConfig,
		}

		err = server.ListenAndServeTLS(conf.GinConfig.MTLS.CertificatePaths.ServerCertPath, conf.GinConfig.MTLS.CertificatePaths.ServerKeyPath)
		if err != nil {
			slog.Error("Exited Catalog API", slog.String("error", err.Error()))
			return
		}
	}
}
