package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/adapter/orderclient"
	"github.com/niksmo/storefront/internal/adapter/session"
	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type coreServices struct {
	resolver service.ResolverService
	cart     *service.CartService
	checkout *service.CheckoutService
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	sqldb      storage.SQLDB
	sessions   session.Store
	events     port.CartEventsProducer
	services   coreServices
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initOutboundAdapters()
	app.initCoreServices()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	sqldb, err := storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.sqldb = sqldb

	sessions, err := session.New(
		app.ctx, app.cfg.SessionDB, app.cfg.Cart.SessionTTL,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.sessions = sessions

	if len(app.cfg.Broker.SeedBrokers) != 0 {
		app.events = app.createEventsProducer()
	}
}

// createEventsProducer wires the analytics feed: schema registry serde
// plus a franz-go producer.
func (app *App) createEventsProducer() port.CartEventsProducer {
	const op = "App.createEventsProducer"

	srClient, err := sr.NewClient(
		sr.URLs(app.cfg.Broker.SchemaRegistryURLs...),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	subject := app.cfg.Broker.CartEventsTopic + "-value"
	serde, err := schema.NewSerdeCartEventV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	producer, err := kafka.NewCartEventsProducer(
		kafka.ProducerClientOpt(
			app.ctx, app.cfg.Broker.SeedBrokers,
			app.cfg.Broker.CartEventsTopic,
		),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	return producer
}

func (app *App) initCoreServices() {
	catalog := storage.NewCatalogRepository(app.sqldb)
	orders := orderclient.New(
		app.cfg.OrderService.BaseURL, app.cfg.OrderService.Timeout,
	)

	app.services.resolver = service.NewResolverService(catalog)
	app.services.cart = service.NewCartService(
		catalog, app.sessions, app.events, app.cfg.Cart.MaxItemQuantity,
	)
	app.services.checkout = service.NewCheckoutService(
		app.services.cart, orders, app.sessions, app.events,
		app.cfg.CurrencyCode,
	)
}

func (app *App) initInboundAdapters() {
	mux := http.NewServeMux()
	httphandler.RegisterProducts(
		mux, app.services.resolver, app.services.resolver,
	)
	httphandler.RegisterCart(mux, app.services.cart, app.cfg.CurrencyCode)
	httphandler.RegisterCheckout(mux, app.services.checkout)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.events != nil {
		app.events.Close()
	}
	app.sessions.Close()
	app.sqldb.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
