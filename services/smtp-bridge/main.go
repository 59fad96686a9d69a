package main

import (
	"log/slog"
	"time"

	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/apihelpers"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/apihelpers/middlewares"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/services/smtp-bridge/apihandlers"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	sc "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/smtp-client"
)

var conf SmtpBridgeConfig

func main() {
	// Start webserver
	router := gin.New()
	router.Use(gin.Recovery(), middlewares.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     conf.GinConfig.AllowOrigins,
		AllowMethods:     []string{"POST", "GET"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", middlewares.HeaderAPIKey},
		ExposeHeaders:    []string{"Content-Type", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	smtpClients, err := sc.NewSmtpClients(lowPrioServers)
	if err != nil {
		slog.Error("Error creating SMTP clients", slog.String("error", err.Error()))
		panic("Error creating SMTP clients")
	}
	defer smtpClients.Close()

	highPrioSmtpClients, err := sc.NewSmtpClients(highPrioServers)
	if err != nil {
		slog.Error("Error creating high priority SMTP clients", slog.String("error", err.Error()))
		panic("Error creating high priority SMTP clients")
	}
	defer highPrioSmtpClients.Close()

	// Add handlers
	router.GET("/", apihandlers.HealthCheckHandle)
	apiModule := apihandlers.NewHTTPHandler(
		conf.ApiKeys,
		highPrioSmtpClients,
		smtpClients,
	)
	apiModule.AddRoutes(router.Group(""))

	if conf.GinConfig.DebugMode {
		if err := apihelpers.WriteRoutesToFile(router, "smtp-bridge-api-routes.txt"); err != nil {
			slog.Warn("could not write routes file", slog.String("error", err.Error()))
		}
	}

	slog.Info("Starting SMTP Bridge API on port " + conf.GinConfig.Port)
	err = router.Run(":" + conf.GinConfig.Port)
	if err != nil {
		slog.Error("Exited SMTP Bridge API", slog.String("error", err.Error()))
		return
	}
}
