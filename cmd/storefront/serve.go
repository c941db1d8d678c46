package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	accountservice "storefront/pkg/account/domain/service"
	analysisservice "storefront/pkg/analysis/domain/service"
	cartservice "storefront/pkg/cart/domain/service"
	"storefront/pkg/cart/infrastructure/memory"
	catalogmodel "storefront/pkg/catalog/domain/model"
	catalogservice "storefront/pkg/catalog/domain/service"
	"storefront/pkg/catalog/infrastructure/seed"
	"storefront/pkg/infrastructure/amqp"
	"storefront/pkg/infrastructure/auth"
	"storefront/pkg/infrastructure/event"
	"storefront/pkg/infrastructure/mysql"
	"storefront/pkg/infrastructure/storage"
	"storefront/pkg/infrastructure/transport"
	"storefront/pkg/notification/application"
	notificationservice "storefront/pkg/notification/domain/service"
	"storefront/pkg/notification/infrastructure/sender"
	trackingservice "storefront/pkg/tracking/domain/service"
)

const shutdownTimeout = 10 * time.Second

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Action: func(c *cli.Context) error {
			cnf, err := parseEnv()
			if err != nil {
				return err
			}
			if err := cnf.validateServe(); err != nil {
				return err
			}
			log.SetLevel(cnf.logLevel())
			return serve(c.Context, cnf)
		},
	}
}

func serve(ctx context.Context, cnf *config) error {
	options, err := cnf.transport()
	if err != nil {
		return err
	}

	db, err := mysql.Connect(cnf.database())
	if err != nil {
		return err
	}
	defer db.Close()

	catalog, err := seed.LoadFile(cnf.CatalogFile)
	if err != nil {
		return err
	}
	log.WithField("products", catalog.Len()).Info("catalog loaded")

	objects, err := storage.NewLocalStorage(cnf.MediaRoot, cnf.MediaBaseURL, cnf.StorageBuckets)
	if err != nil {
		return err
	}
	defer func() {
		if err := objects.Close(); err != nil {
			log.WithError(err).Warn("close object storage")
		}
	}()
	tokens, err := auth.NewTokenIssuer(cnf.JWTSecret, cnf.TokenTTL)
	if err != nil {
		return err
	}

	handlers := []event.Handler{event.LogHandler(log.StandardLogger())}
	if cnf.AMQPURL != "" {
		publisher, err := amqp.Dial(cnf.AMQPURL, cnf.AMQPExchange, cnf.AMQPConnectTimeout)
		if err != nil {
			return err
		}
		defer func() {
			if err := publisher.Close(); err != nil {
				log.WithError(err).Warn("close broker connection")
			}
		}()
		handlers = append(handlers, publisher)
	} else {
		log.Info("no broker configured, domain events are only logged")
	}

	router := newRouter(db, cnf, catalog, objects, tokens, handlers, options)

	killSignalChan := getKillSignalChan()
	srv := &http.Server{
		Addr:              cnf.ServeRESTAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("address", cnf.ServeRESTAddress).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "serve http")
		}
		return nil
	})
	g.Go(func() error {
		waitForKillSignalChan(gctx, killSignalChan)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newRouter(
	db *sqlx.DB,
	cnf *config,
	catalog *catalogmodel.Catalog,
	objects *storage.Storage,
	tokens *auth.TokenIssuer,
	handlers []event.Handler,
	options transport.Options,
) http.Handler {
	logger := log.StandardLogger()

	notifications := notificationservice.NewNotificationService(
		mysql.NewNotificationRepository(db),
		sender.NewLogSender(logger),
		cnf.PasswordResetURL,
		event.NewDispatcher(logger, handlers...),
	)
	accountHandlers := append(append([]event.Handler{}, handlers...), application.NewAccountSubscriber(notifications))
	dispatcher := event.NewDispatcher(logger, accountHandlers...)

	users := mysql.NewUserRepository(db)
	profiles := mysql.NewProfileRepository(db)
	passwords := auth.NewPasswordManager(cnf.BcryptCost)

	return transport.Router(transport.Services{
		Catalog:  catalogservice.NewCatalogService(catalog),
		Carts:    cartservice.NewCartService(memory.NewCartRepository(), catalog, cartservice.DefaultPromoTable(), dispatcher),
		Auth:     accountservice.NewAuthService(users, profiles, passwords, tokens, auth.NewRevocationList(), dispatcher),
		Profiles: accountservice.NewProfileService(profiles, users, passwords, objects, dispatcher),
		Address:  accountservice.NewAddressService(mysql.NewAddressRepository(db), dispatcher),
		Orders:   accountservice.NewOrderService(mysql.NewOrderRepository(db)),
		Tracker:  trackingservice.NewMockTracker(),
		Analyzer: analysisservice.NewMockAnalyzer(),
		Media:    objects.Handler(),
	}, options)
}

func getKillSignalChan() chan os.Signal {
	osKillSignalChan := make(chan os.Signal, 1)
	signal.Notify(osKillSignalChan, os.Interrupt, syscall.SIGTERM)
	return osKillSignalChan
}

func waitForKillSignalChan(ctx context.Context, killSignalChan <-chan os.Signal) {
	select {
	case killSignal := <-killSignalChan:
		switch killSignal {
		case os.Interrupt:
			log.Info("Got SIGINT...")
		case syscall.SIGTERM:
			log.Info("Got SIGTERM...")
		}
	case <-ctx.Done():
		log.WithError(ctx.Err()).Info("shutting down")
	}
}
