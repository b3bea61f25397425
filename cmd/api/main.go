package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/refinly/loan-referral/internal/config"
	"github.com/refinly/loan-referral/internal/infra/auth"
	"github.com/refinly/loan-referral/internal/infra/database"
	"github.com/refinly/loan-referral/internal/infra/dedupe"
	"github.com/refinly/loan-referral/internal/infra/http/handlers"
	"github.com/refinly/loan-referral/internal/infra/integration/openai"
	"github.com/refinly/loan-referral/internal/infra/integration/whatsapp"
	"github.com/refinly/loan-referral/internal/infra/mail"
	"github.com/refinly/loan-referral/internal/infra/presets"
	"github.com/refinly/loan-referral/internal/infra/queue"
	"github.com/refinly/loan-referral/internal/infra/worker"
	"github.com/refinly/loan-referral/internal/logger"
	"github.com/refinly/loan-referral/internal/usecase"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	// 1. Storage
	db, err := database.NewDBConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	userRepo := database.NewUserRepository(db)
	leadRepo := database.NewLeadRepository(db)
	packageRepo := database.NewBankPackageRepository(db)

	store, err := presets.Load(cfg.PresetsPath)
	if err != nil {
		return err
	}
	log.Info("presets loaded", zap.Int("count", store.Len()))

	// 2. Integrations
	waClient := whatsapp.NewClient(
		cfg.WhatsApp.AccessToken, cfg.WhatsApp.PhoneNumberID, cfg.WhatsApp.APIURL, cfg.WhatsApp.Timeout, log,
	)

	var llm usecase.Completer
	if cfg.OpenAI.APIKey != "" {
		llm = openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL, cfg.OpenAI.Timeout)
	} else {
		log.Warn("OPENAI_API_KEY not set, chatbot will answer presets only")
	}

	var seen usecase.DedupeStore = dedupe.NoopStore{}
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = dedupe.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		seen = dedupe.NewRedisStore(redisClient, cfg.WebhookDedupeTTL)
	}

	var mailer usecase.LeadEmailSender
	if cfg.Mail.Enabled() {
		mailer = mail.NewEmailSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.From)
	}

	// 3. Notifications
	direct := usecase.NewDirectAdminNotifier(waClient, cfg.AdminWhatsAppNumbers, mailer, cfg.AdminEmails, log)
	var notifier usecase.AdminNotifier = direct

	var rabbit *queue.RabbitMQ
	if cfg.RabbitMQURL != "" {
		rabbit, err = queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			return err
		}
		defer rabbit.Close()

		consumerCh, err := rabbit.Conn.Channel()
		if err != nil {
			return fmt.Errorf("open consumer channel: %w", err)
		}
		defer consumerCh.Close()

		notifier = &usecase.FallbackNotifier{
			Primary:   queue.NewProducer(rabbit.Ch),
			Secondary: direct,
			Logger:    log,
		}

		go func() {
			w := queue.NewWorker(consumerCh, direct, log)
			if err := w.Start(ctx, queue.QueueName); err != nil {
				log.Error("notification worker exited", zap.Error(err))
			}
		}()
	}

	go worker.NewStaleLeadWorker(leadRepo, direct, cfg.FollowUpInterval, cfg.FollowUpAfter, log).Start(ctx)

	// 4. UseCases
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL())

	handleMessageUC := usecase.NewHandleMessageUseCase(store, llm, waClient, seen, log)
	submitLeadUC := usecase.NewSubmitLeadUseCase(userRepo, leadRepo, packageRepo, notifier, cfg.DefaultRepaymentRate, log)
	registerUC := usecase.NewRegisterUseCase(userRepo, auth.BcryptHasher{}, log)
	loginUC := usecase.NewLoginUseCase(userRepo, auth.BcryptHasher{}, tokens, log)

	// 5. Handlers
	checks := map[string]handlers.Check{
		"database": db.PingContext,
		"redis":    nil,
		"rabbitmq": nil,
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	if rabbit != nil {
		checks["rabbitmq"] = func(context.Context) error {
			if !rabbit.Healthy() {
				return errors.New("connection closed")
			}
			return nil
		}
	}

	router := newRouter(routerDeps{
		Logger:       log,
		Tokens:       tokens,
		Webhook:      handlers.NewWebhookHandler(cfg.WhatsApp.VerifyToken, cfg.WhatsApp.AppSecret, handleMessageUC, log),
		Leads:        handlers.NewLeadHandler(submitLeadUC, log),
		Auth:         handlers.NewAuthHandler(registerUC, loginUC, log),
		Health:       handlers.NewHealthHandler(version, checks),
		LoginLimiter: handlers.NewRateLimiter(ctx, 10, time.Minute, cfg.TrustProxyHeaders),
		CORSOrigins:  cfg.CORSAllowedOrigins,
	})

	// 6. Server
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", cfg.HTTPAddr), zap.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
