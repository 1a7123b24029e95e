package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/starwheel/internal/common/clock"
	"github.com/KirkDiggler/starwheel/internal/common/keylock"
	"github.com/KirkDiggler/starwheel/internal/common/logger"
	"github.com/KirkDiggler/starwheel/internal/common/uuid"
	"github.com/KirkDiggler/starwheel/internal/config"
	"github.com/KirkDiggler/starwheel/internal/draw"
	"github.com/KirkDiggler/starwheel/internal/handlers/api"
	"github.com/KirkDiggler/starwheel/internal/providers/jwtidentity"
	"github.com/KirkDiggler/starwheel/internal/providers/sandboxpay"
	"github.com/KirkDiggler/starwheel/internal/repositories/account"
	ledgerRepo "github.com/KirkDiggler/starwheel/internal/repositories/ledger"
	"github.com/KirkDiggler/starwheel/internal/repositories/round"
	"github.com/KirkDiggler/starwheel/internal/repositories/store"
	"github.com/KirkDiggler/starwheel/internal/services/ledger"
	"github.com/KirkDiggler/starwheel/internal/services/lobby"
	"github.com/KirkDiggler/starwheel/internal/services/messaging"
	"github.com/KirkDiggler/starwheel/internal/services/payments"
	"github.com/KirkDiggler/starwheel/internal/services/payout"
	"github.com/KirkDiggler/starwheel/internal/services/player"
	"github.com/KirkDiggler/starwheel/internal/worker"
)

func main() {
	configFile := flag.String("config", "", "path to a YAML config file")
	envFile := flag.String("env", ".env", "path to a .env file")
	flag.Parse()

	cfg, err := config.Load(&config.Options{ConfigFile: *configFile, EnvFile: *envFile})
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		zlog.Fatal("failed to connect to redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
	}

	// Initialize repositories
	accountRepo, err := account.NewRedis(&account.Config{RedisClient: redisClient})
	if err != nil {
		zlog.Fatal("failed to create account repository", zap.Error(err))
	}
	roundRepo, err := round.NewRedis(&round.Config{RedisClient: redisClient})
	if err != nil {
		zlog.Fatal("failed to create round repository", zap.Error(err))
	}
	ledgerRepository, err := ledgerRepo.NewRedis(&ledgerRepo.Config{RedisClient: redisClient})
	if err != nil {
		zlog.Fatal("failed to create ledger repository", zap.Error(err))
	}
	unitOfWork, err := store.NewRedis(&store.Config{
		RedisClient: redisClient,
		MaxAttempts: cfg.Redis.MaxAttempts,
		Logger:      zlog,
	})
	if err != nil {
		zlog.Fatal("failed to create store", zap.Error(err))
	}

	locker := keylock.New()
	clk := &clock.DefaultClock{}
	ids := uuid.New()

	source := draw.NewCryptoSource()
	if cfg.Round.Seed != 0 {
		zlog.Warn("draws are seeded and reproducible", zap.Uint64("seed", cfg.Round.Seed))
		source = draw.NewSeededSource(cfg.Round.Seed)
	}
	split, err := cfg.Split()
	if err != nil {
		zlog.Fatal("invalid prize split", zap.Error(err))
	}

	// Initialize services
	ledgerSvc, err := ledger.New(&ledger.Config{
		Store:         unitOfWork,
		AccountRepo:   accountRepo,
		LedgerRepo:    ledgerRepository,
		Locker:        locker,
		Clock:         clk,
		UUIDGenerator: ids,
		Logger:        zlog,
	})
	if err != nil {
		zlog.Fatal("failed to create ledger service", zap.Error(err))
	}

	payoutSvc, err := payout.New(&payout.Config{
		Split:         &split,
		Store:         unitOfWork,
		RoundRepo:     roundRepo,
		Locker:        locker,
		Clock:         clk,
		UUIDGenerator: ids,
		Logger:        zlog,
	})
	if err != nil {
		zlog.Fatal("failed to create payout service", zap.Error(err))
	}

	lobbySvc, err := lobby.New(&lobby.Config{
		Capacity:      cfg.Round.Capacity,
		EntryFee:      &cfg.Round.EntryFee,
		MinPlayers:    cfg.Round.MinPlayers,
		Store:         unitOfWork,
		RoundRepo:     roundRepo,
		PayoutService: payoutSvc,
		Source:        source,
		Locker:        locker,
		Clock:         clk,
		UUIDGenerator: ids,
		Logger:        zlog,
	})
	if err != nil {
		zlog.Fatal("failed to create lobby service", zap.Error(err))
	}

	identity, err := jwtidentity.New(&jwtidentity.Config{
		Secret: cfg.Identity.Secret,
		Issuer: cfg.Identity.Issuer,
	})
	if err != nil {
		zlog.Fatal("failed to create identity provider", zap.Error(err))
	}

	playerSvc, err := player.New(&player.Config{
		StartingBalance:  &cfg.Round.StartingBalance,
		Store:            unitOfWork,
		AccountRepo:      accountRepo,
		IdentityProvider: identity,
		Locker:           locker,
		Clock:            clk,
		Logger:           zlog,
	})
	if err != nil {
		zlog.Fatal("failed to create player service", zap.Error(err))
	}

	paymentProvider, err := sandboxpay.New(&sandboxpay.Config{
		BaseURL:       cfg.Payments.BaseURL,
		UUIDGenerator: ids,
	})
	if err != nil {
		zlog.Fatal("failed to create payment provider", zap.Error(err))
	}

	paymentsSvc, err := payments.New(&payments.Config{
		Store:           unitOfWork,
		LedgerRepo:      ledgerRepository,
		PaymentProvider: paymentProvider,
		Locker:          locker,
		Clock:           clk,
		UUIDGenerator:   ids,
		Logger:          zlog,
	})
	if err != nil {
		zlog.Fatal("failed to create payments service", zap.Error(err))
	}

	messagingSvc, err := messaging.New(&messaging.Config{
		Source: draw.NewCryptoSource(),
	})
	if err != nil {
		zlog.Fatal("failed to create messaging service", zap.Error(err))
	}

	handler, err := api.New(&api.Config{
		LobbyService:     lobbySvc,
		PlayerService:    playerSvc,
		LedgerService:    ledgerSvc,
		PaymentsService:  paymentsSvc,
		MessagingService: messagingSvc,
		UUIDGenerator:    ids,
		AdminToken:       cfg.Server.AdminToken,
		Health: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		},
		Logger: zlog,
	})
	if err != nil {
		zlog.Fatal("failed to create http handler", zap.Error(err))
	}

	runCtx, stop := context.WithCancel(context.Background())
	defer stop()

	if _, err := lobbySvc.GetOrCreateOpenRound(runCtx); err != nil {
		zlog.Fatal("failed to open a round", zap.Error(err))
	}

	if cfg.AutoStart.Enabled {
		starter, err := worker.New(&worker.Config{
			LobbyService: lobbySvc,
			Clock:        clk,
			Interval:     cfg.AutoStart.Interval,
			Countdown:    cfg.AutoStart.Countdown,
			MinPlayers:   cfg.Round.MinPlayers,
			FillWithBots: cfg.AutoStart.FillWithBots,
			StaleAfter:   cfg.AutoStart.StaleAfter,
			Logger:       zlog,
		})
		if err != nil {
			zlog.Fatal("failed to create auto-start worker", zap.Error(err))
		}
		go starter.Run(runCtx)
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zlog.Info("lobbyd listening", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	zlog.Info("shutting down")
	stop()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error("error stopping http server", zap.Error(err))
	}

	zlog.Info("lobbyd has been shut down")
}
