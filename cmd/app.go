package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"collections-agent/internal/config"
	"collections-agent/internal/integrations/gemini"
	"collections-agent/internal/integrations/mailer"
	"collections-agent/internal/integrations/paramstore"
	"collections-agent/internal/integrations/twilio"
	"collections-agent/internal/repository"
	"collections-agent/internal/transport/httpapi"
	"collections-agent/internal/usecase"
)

// app is the fully wired service graph shared by every command.
type app struct {
	cfg           *config.Config
	logger        *slog.Logger
	directory     repository.Directory
	chat          *usecase.ChatService
	notify        *usecase.NotifyService
	conversations *usecase.ConversationService
	turns         *usecase.TurnGate
}

func newLogger(cfg *config.Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	return logger
}

func buildApp(ctx context.Context) (*app, error) {
	// ---- Configuration (read only here) ----
	cfg := config.Load()
	logger := newLogger(cfg)

	var directory repository.Directory
	if cfg.UsesAWS() {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		if cfg.ParamPrefix != "" {
			ssmClient, err := paramstore.New(awsssm.NewFromConfig(awsCfg))
			if err != nil {
				return nil, fmt.Errorf("create SSM client: %w", err)
			}
			cfg.ResolveSecrets(ctx, ssmClient, logger)
		}
		if cfg.BorrowersTable != "" {
			dir, err := repository.LoadDynamoDirectory(ctx, awsdynamodb.NewFromConfig(awsCfg), cfg.BorrowersTable)
			if err != nil {
				return nil, fmt.Errorf("load borrowers from %s: %w", cfg.BorrowersTable, err)
			}
			directory = dir
		}
	}
	if directory == nil {
		dir, err := repository.LoadFixture(cfg.BorrowersFile)
		if err != nil {
			return nil, fmt.Errorf("load borrowers: %w", err)
		}
		directory = dir
	}

	for _, c := range []config.Capability{config.CapabilityChat, config.CapabilityWhatsApp, config.CapabilityEmail} {
		if missing := cfg.Missing(c); len(missing) > 0 {
			logger.Warn("provider not configured", "capability", string(c), "missing", missing)
		}
	}

	// ---- Clients ----
	geminiClient, err := gemini.NewClient(cfg.GoogleAPIKey, cfg.GeminiModel,
		gemini.WithBaseURL(cfg.GeminiBaseURL),
		gemini.WithHTTPClient(&http.Client{Timeout: cfg.ProviderTimeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	twilioClient := twilio.New(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber)
	mailClient := mailer.New(mailer.Settings{
		Host:     cfg.EmailHost,
		Port:     cfg.EmailPort,
		Username: cfg.EmailUser,
		Password: cfg.EmailPass,
		Timeout:  cfg.ProviderTimeout,
	})

	// ---- Services ----
	chat, err := usecase.NewChatService(geminiClient, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create chat service: %w", err)
	}
	notify, err := usecase.NewNotifyService(twilioClient, mailClient, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create notify service: %w", err)
	}
	conversations, err := usecase.NewConversationService(directory, repository.NewMemoryStore(), chat, notify, logger)
	if err != nil {
		return nil, fmt.Errorf("create conversation service: %w", err)
	}
	turns, err := usecase.NewTurnGate(conversations)
	if err != nil {
		return nil, fmt.Errorf("create turn gate: %w", err)
	}

	return &app{
		cfg:           cfg,
		logger:        logger,
		directory:     directory,
		chat:          chat,
		notify:        notify,
		conversations: conversations,
		turns:         turns,
	}, nil
}

func (a *app) httpHandler() (*httpapi.Handler, error) {
	return httpapi.NewHandler(httpapi.Deps{
		Directory:     a.directory,
		Chat:          a.chat,
		Notifier:      a.notify,
		Turns:         a.turns,
		Conversations: a.conversations,
		Logger:        a.logger,
	})
}
