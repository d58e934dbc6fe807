package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/JonasLimhi/Edmund-Website/internal/cart"
	"github.com/JonasLimhi/Edmund-Website/internal/catalog"
	"github.com/JonasLimhi/Edmund-Website/internal/config"
	"github.com/JonasLimhi/Edmund-Website/internal/events"
	"github.com/JonasLimhi/Edmund-Website/internal/handlers"
	"github.com/JonasLimhi/Edmund-Website/internal/httpserver"
	"github.com/JonasLimhi/Edmund-Website/internal/identity"
	"github.com/JonasLimhi/Edmund-Website/internal/logging"
	loggingmw "github.com/JonasLimhi/Edmund-Website/internal/middleware/logging"
	"github.com/JonasLimhi/Edmund-Website/internal/social"
	"github.com/JonasLimhi/Edmund-Website/internal/store"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL).With("service", "storefront")
	slog.SetDefault(logger)

	var backend store.Backend
	if configuration.STORE_PATH != "" {
		bolt, err := store.OpenBolt(configuration.STORE_PATH)
		if err != nil {
			log.Fatalf("store open: %v", err)
		}
		backend = bolt
	} else {
		logger.Warn("STORE_PATH not set, falling back to in-memory store")
		backend = store.NewMemory()
	}

	producer, err := events.NewPublisher(logger)
	if err != nil {
		log.Fatalf("event bus: %v", err)
	}

	catalogMgr, err := catalog.NewManager(backend)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	identityMgr := identity.NewManager(backend)
	linker := social.NewLinker(identityMgr)
	composer := cart.NewComposer(backend)

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		ProductHandler: &handlers.ProductHandler{Catalog: catalogMgr, Events: producer},
		AuthHandler:    &handlers.AuthHandler{Identity: identityMgr, Events: producer},
		SocialHandler:  &handlers.SocialHandler{Linker: linker, Events: producer},
		CartHandler:    &handlers.CartHandler{Cart: composer, Events: producer},
		Identity:       identityMgr,
	})

	srv := &http.Server{
		Addr:              configuration.HTTP_ADDR,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("storefront listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if err := backend.Close(); err != nil {
		log.Printf("store close error: %v", err)
	}

	log.Println("shutdown complete")
}
