package cmd

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/creatorlens/backend/ui/rest"
	"github.com/creatorlens/backend/ui/rest/middleware"
)

var restCmd = &cobra.Command{
	Use:   "rest",
	Short: "Serve the HTTP API",
	Run:   restServer,
}

func init() {
	restCmd.Flags().String("port", "", "Port to listen on (overrides APP_PORT)")
	rootCmd.AddCommand(restCmd)
}

func restServer(cmd *cobra.Command, _ []string) {
	if portFlag, _ := cmd.Flags().GetString("port"); portFlag != "" {
		appConfig.App.Port = portFlag
	}

	fiberConfig := fiber.Config{
		EnableTrustedProxyCheck: true,
		Network:                 "tcp",
		AppName:                 "CreatorLens API",
		ServerHeader:            "Hidden",
		BodyLimit:               10 * 1024 * 1024,
	}
	if len(appConfig.App.TrustedProxies) > 0 {
		fiberConfig.TrustedProxies = appConfig.App.TrustedProxies
		fiberConfig.ProxyHeader = fiber.HeaderXForwardedHost
	}

	app := fiber.New(fiberConfig)

	app.Use(requestid.New())

	origins := strings.Join(appConfig.App.CorsAllowedOrigins, ", ")
	if !strings.Contains(origins, appConfig.App.BaseUrl) {
		origins += ", " + appConfig.App.BaseUrl
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-User-ID, X-User-Email, X-Request-ID",
	}))
	app.Use(middleware.Recovery())
	app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	if appConfig.App.Debug {
		app.Use(logger.New())
	}

	rest.InitRestHealth(app, healthUsecase)

	apiGroup := app.Group(appConfig.App.BasePath + "/api")

	rest.InitRestSerp(apiGroup, searchUsecase)
	rest.InitRestCache(apiGroup, cacheAdminUsecase)

	userGroup := apiGroup.Group("", middleware.RequireUser())
	rest.InitRestThumbnail(userGroup, thumbnailUsecase)
	rest.InitRestCollection(userGroup, collectionUsecase)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logrus.Info("[REST] Reception of termination signal, shutting down gracefully...")
		if err := app.Shutdown(); err != nil {
			logrus.Errorf("[REST] Error during Fiber shutdown: %v", err)
		}
		StopApp()
	}()

	if err := app.Listen(":" + appConfig.App.Port); err != nil {
		logrus.Fatalln("Failed to start server:", err)
	}
}
