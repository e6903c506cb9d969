package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/global-remit/teller-desk/src/internal/adapter/cache"
	"github.com/global-remit/teller-desk/src/internal/adapter/http/controller"
	"github.com/global-remit/teller-desk/src/internal/adapter/http/middleware"
	"github.com/global-remit/teller-desk/src/internal/adapter/http/router"
	"github.com/global-remit/teller-desk/src/internal/adapter/messaging"
	"github.com/global-remit/teller-desk/src/internal/adapter/receipt"
	"github.com/global-remit/teller-desk/src/internal/adapter/repository/memory"
	"github.com/global-remit/teller-desk/src/internal/adapter/repository/postgres"
	"github.com/global-remit/teller-desk/src/internal/adapter/repository/repo_interfaces"
	"github.com/global-remit/teller-desk/src/internal/adapter/repository/seed"
	"github.com/global-remit/teller-desk/src/internal/config"
	"github.com/global-remit/teller-desk/src/internal/logger"
	"github.com/global-remit/teller-desk/src/internal/metrics"
	"github.com/global-remit/teller-desk/src/internal/usecase/service_interfaces"
	"github.com/global-remit/teller-desk/src/internal/usecase/services"
)

type repositories struct {
	clients   repo_interfaces.ClientRepository
	kyc       repo_interfaces.KYCRepository
	transfers repo_interfaces.TransferRepository
	rates     repo_interfaces.RateRepository
	till      repo_interfaces.TillRepository
	operators repo_interfaces.OperatorRepository
	db        *sql.DB
}

type dispatcher interface {
	service_interfaces.TransferDispatcher
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger.Configure(cfg.LogLevel, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		log.Fatalf("open repositories: %v", err)
	}
	if repos.db != nil {
		defer repos.db.Close()
	}

	dispatch, err := openDispatcher(cfg)
	if err != nil {
		log.Fatalf("open dispatcher: %v", err)
	}
	defer dispatch.Close()

	sessions := cache.NewSessionStore(cfg.SessionCapacity, cfg.SessionTTL)
	go sessions.RunJanitor(ctx, time.Minute)

	m := metrics.New()

	rateService := services.NewRateService(repos.rates)
	chargesService := services.NewChargesService(cfg.FeePolicy(), rateService)
	tillService := services.NewTillService(repos.till, m)
	transferService := services.NewTransferService(
		repos.transfers,
		rateService,
		tillService,
		dispatch,
		receipt.NewPDFGenerator("Global Remit"),
		m,
		services.TransferPolicy{
			Limits:      cfg.TransferLimits(),
			Risk:        cfg.RiskPolicy(),
			MaxAttempts: cfg.DispatchMaxAttempts,
			Backoff:     cfg.DispatchBackoff,
		},
	)
	clientService := services.NewClientService(repos.clients, repos.kyc, repos.transfers, transferService, cfg.FormDefaults().SourceCurrency)
	sendMoneyService := services.NewSendMoneyService(
		sessions,
		clientService,
		rateService,
		chargesService,
		transferService,
		m,
		services.SendMoneyOptions{
			Defaults:          cfg.FormDefaults(),
			EchoTwoFactorCode: cfg.TwoFactorEchoCode,
		},
	)
	authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTTTL)
	referenceService := services.NewReferenceService(repos.operators, repos.rates)

	handler := router.New(
		[]router.RouteRegistrar{
			controller.NewAuthController(authService),
			controller.NewReferenceController(referenceService),
			controller.NewRateController(rateService),
			controller.NewQuoteController(chargesService),
		},
		[]router.RouteRegistrar{
			controller.NewClientController(clientService),
			controller.NewSendMoneyController(sendMoneyService),
			controller.NewTransferController(transferService),
			controller.NewTillController(tillService),
		},
		middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey),
		middleware.TellerAuth(authService),
		m,
	)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("teller desk listening", logger.Fields{
			"port":     cfg.Port,
			"backend":  cfg.DataBackend,
			"dispatch": cfg.DispatchBackend,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server stopped", err, nil)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", err, nil)
	}
	logger.Info("teller desk stopped", nil)
}

func openRepositories(ctx context.Context, cfg config.Config) (repositories, error) {
	if cfg.DataBackend != "postgres" {
		return repositories{
			clients:   memory.NewClientRepository(seed.Clients()),
			kyc:       memory.NewKYCRepository(),
			transfers: memory.NewTransferRepository(seed.Transfers()),
			rates:     memory.NewRateRepository(seed.Rates()),
			till:      memory.NewTillRepository(seed.Registers(seed.DemoTellerID, time.Now())),
			operators: memory.NewOperatorRepository(),
		}, nil
	}

	if err := postgres.RunMigrations(cfg.DatabaseDSN); err != nil {
		return repositories{}, err
	}

	openCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := postgres.Open(openCtx, cfg.DatabaseDSN)
	if err != nil {
		return repositories{}, err
	}
	if err := postgres.EnsureSeedData(openCtx, db, seed.DemoTellerID); err != nil {
		_ = db.Close()
		return repositories{}, err
	}

	return repositories{
		clients:   postgres.NewClientRepository(db),
		kyc:       postgres.NewKYCRepository(db),
		transfers: postgres.NewTransferRepository(db),
		rates:     postgres.NewRateRepository(db),
		till:      postgres.NewTillRepository(db),
		operators: memory.NewOperatorRepository(),
		db:        db,
	}, nil
}

func openDispatcher(cfg config.Config) (dispatcher, error) {
	if cfg.DispatchBackend == "amqp" {
		d, err := messaging.NewAMQPDispatcher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
	return messaging.NewLogDispatcher(), nil
}
