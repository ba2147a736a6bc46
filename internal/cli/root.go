package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"orion_service/controllers"
	"orion_service/internal/config"
	"orion_service/internal/logger"
	"orion_service/internal/mailer"
	"orion_service/internal/store"
)

const serviceName = "orion-service"

// CommandFactory holds the constructors commands use to reach external
// systems, so tests can swap them out.
type CommandFactory struct {
	LoadConfig func() (*config.Config, error)
	OpenUsers  func(ctx context.Context, cfg *config.Config) (Users, error)
	NewMailer  func(cfg *config.Config) (controllers.Mailer, error)
	// LogOutput receives log lines. Nil means stdout.
	LogOutput io.Writer
}

// Users is a user store plus its lifecycle.
type Users interface {
	controllers.UserStore
	controllers.Pinger
	Close(ctx context.Context) error
}

var defaultCommandFactory = CommandFactory{
	LoadConfig: config.Load,
	OpenUsers:  openUsers,
	NewMailer:  newMailer,
}

func (f CommandFactory) CreateRootCommand() *cobra.Command {
	serve := f.createServeCommand()
	root := &cobra.Command{
		Use:          "orion",
		Short:        "Orion purchaser records and confirmation email service",
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	root.AddCommand(serve, f.createUsersCommand(), f.createMailCommand())
	return root
}

func Execute() {
	if err := defaultCommandFactory.CreateRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (f CommandFactory) setup() (*config.Config, error) {
	cfg, err := f.LoadConfig()
	if err != nil {
		return nil, err
	}
	out := f.LogOutput
	if out == nil {
		out = os.Stdout
	}
	logger.Init(out, serviceName, cfg.Debug)
	return cfg, nil
}

type mongoUsers struct {
	*store.UserRepository
	client *store.Client
}

func (m mongoUsers) Ping(ctx context.Context) error {
	return m.client.Ping(ctx)
}

func (m mongoUsers) Close(ctx context.Context) error {
	return m.client.Close(ctx)
}

func openUsers(ctx context.Context, cfg *config.Config) (Users, error) {
	client, err := store.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx); err != nil {
		log.Error().Err(err).Msg("MongoDB not reachable yet")
	} else {
		log.Info().Msg("MongoDB connected")
	}
	return mongoUsers{
		UserRepository: store.NewUserRepository(client.Collection(cfg.Mongo.Collection)),
		client:         client,
	}, nil
}

func newMailer(cfg *config.Config) (controllers.Mailer, error) {
	if cfg.Mail.User == "" || cfg.Mail.Password == "" {
		log.Warn().Msg("Mail relay credentials are not set")
	}
	return mailer.New(mailer.Options{
		Addr:        cfg.SMTPAddr(),
		Username:    cfg.Mail.User,
		Password:    cfg.Mail.Password,
		FromName:    cfg.Mail.FromName,
		FromAddress: cfg.Mail.FromAddress,
		Subject:     cfg.Mail.Subject,
	})
}
