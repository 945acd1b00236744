package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/raffle-ticket-sales/internal/config"
	"github.com/iliyamo/raffle-ticket-sales/internal/database"
	"github.com/iliyamo/raffle-ticket-sales/internal/deeplink"
	"github.com/iliyamo/raffle-ticket-sales/internal/export"
	"github.com/iliyamo/raffle-ticket-sales/internal/handler"
	"github.com/iliyamo/raffle-ticket-sales/internal/logging"
	"github.com/iliyamo/raffle-ticket-sales/internal/middleware"
	"github.com/iliyamo/raffle-ticket-sales/internal/offline"
	"github.com/iliyamo/raffle-ticket-sales/internal/queue"
	"github.com/iliyamo/raffle-ticket-sales/internal/repository"
	"github.com/iliyamo/raffle-ticket-sales/internal/router"
	"github.com/iliyamo/raffle-ticket-sales/internal/selection"
	"github.com/iliyamo/raffle-ticket-sales/internal/service"
	"github.com/iliyamo/raffle-ticket-sales/internal/view"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	offCfg := config.LoadOfflineConfig()
	rlCfg := config.LoadRateLimitConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, database.Options{
		User: cfg.DBUser, Pass: cfg.DBPass, Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName,
	})
	if err != nil {
		log.WithError(err).Fatal("database unavailable")
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
	}

	money, err := selection.NewMoneyFormatter(cfg.CurrencySymbol, cfg.CurrencyPattern)
	if err != nil {
		log.WithError(err).Warn("bad currency settings, using defaults")
		money = selection.DefaultMoney()
	}
	linker := deeplink.NewLinker(cfg.WhatsAppCountryCode)
	actions := view.Actions{Base: cfg.BackendBaseURL}

	pages, err := view.NewRenderer()
	if err != nil {
		log.WithError(err).Fatal("parse templates")
	}
	cards, err := export.NewRenderer()
	if err != nil {
		log.WithError(err).Fatal("load card fonts")
	}
	exporter := export.NewExporter(cards, linker)

	policy := offline.Policy{Version: offCfg.Version, Precache: offCfg.Precache}
	var store offline.Store
	if offCfg.Enabled {
		if rdb != nil {
			store = offline.NewRedisStore(rdb, offCfg.Prefix, offCfg.TTL)
		} else {
			store = offline.NewMemoryStore(offCfg.MemoryEntries, offCfg.TTL)
		}
		if purged, err := offline.Activate(ctx, store, policy); err != nil {
			log.WithError(err).Warn("offline cache activation failed")
		} else if len(purged) > 0 {
			log.WithField("purged", purged).Info("dropped old offline cache generations")
		}
	}

	if cfg.AuditConsumerEnabled {
		go func() {
			if err := queue.StartSubmissionConsumer(ctx, cfg.AMQPURL, "logs"); err != nil && !errors.Is(err, context.Canceled) {
				log.WithError(err).Error("submission consumer stopped")
			}
		}()
	}

	raffles := &handler.RaffleHandler{
		Catalog:      repository.NewCatalog(db),
		Money:        money,
		Linker:       linker,
		Actions:      actions,
		DefaultPrice: cfg.DefaultPrice,
	}
	purchases := &handler.PurchaseHandler{
		Catalog:      raffles.Catalog,
		Publisher:    service.NewPublisher(cfg.AMQPURL),
		Money:        money,
		DefaultPrice: cfg.DefaultPrice,
		BcryptCost:   cfg.BcryptCost,
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = pages
	e.Use(echomw.Recover(), echomw.RequestID(), middleware.RequestLogger())
	if offCfg.Enabled {
		e.Use(middleware.OfflineCache(policy, store, offCfg.MaxBodyBytes))
	}

	router.RegisterRoutes(e, &handler.ReadyHandler{DB: db, Redis: rdb})
	if cfg.MetricsEnabled {
		router.RegisterMetrics(e)
	}
	router.RegisterOffline(e, &handler.OfflineHandler{Policy: policy, Manifest: offline.DefaultManifest()})
	router.RegisterPublic(e, raffles, purchases, cfg.JWTSecret, middleware.NewTokenBucket(rlCfg, rdb))
	router.RegisterAdmin(e, &handler.ExportHandler{Raffles: raffles, Exporter: exporter}, cfg.JWTSecret)

	addr := ":" + cfg.Port
	go func() {
		log.WithFields(log.Fields{"addr": addr, "env": cfg.Env}).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
	}
	exporter.Wait()
}
