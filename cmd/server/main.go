package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mvoronin/market_ledger/internal/config"
	"github.com/mvoronin/market_ledger/internal/events"
	"github.com/mvoronin/market_ledger/internal/handlers"
	"github.com/mvoronin/market_ledger/internal/ledger"
	"github.com/mvoronin/market_ledger/internal/logging"
	"github.com/mvoronin/market_ledger/internal/middleware/loggingmw"
	"github.com/mvoronin/market_ledger/internal/search"
	httpserver "github.com/mvoronin/market_ledger/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	ctx := context.Background()
	db, err := config.InitDB(ctx, configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	lgr := ledger.New(db)
	jwtSecret := []byte(configuration.JWT_SECRET)

	var producer *events.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = events.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	var index *search.Index
	if configuration.ES_URL != "" {
		index, err = search.NewIndex(configuration.ES_URL, configuration.ES_USER, configuration.ES_PASSWORD)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		TokenHandler:   &handlers.TokenHandler{JWTSecret: jwtSecret},
		AccountHandler: &handlers.AccountHandler{Ledger: lgr, Producer: producer, Index: index, JWTSecret: jwtSecret},
		ProductHandler: &handlers.ProductHandler{Ledger: lgr, Producer: producer, Index: index, JWTSecret: jwtSecret},
		CartHandler:    &handlers.CartHandler{Ledger: lgr, Producer: producer, JWTSecret: jwtSecret},
		SearchHandler:  &handlers.SearchHandler{Index: index},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
