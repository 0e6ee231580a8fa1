package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"

	"gofurn.io/storefront"
	"gofurn.io/storefront/api"
	"gofurn.io/storefront/cart"
	"gofurn.io/storefront/config"
	"gofurn.io/storefront/driver"
)

var (
	cfgPath string
	verbose bool

	svc    storefront.Service
	logger *zap.Logger
)

func main() {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Furniture storefront client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd.Context())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if svc != nil {
				svc.Shutdown()
			}
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath(), "config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newProductsCmd(),
		newCategoriesCmd(),
		newCartCmd(),
		newCheckoutCmd(),
		newOrdersCmd(),
		newAdminCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "storefront.yaml"
	}
	return home + "/.storefront/config.yaml"
}

func setup(ctx context.Context) error {
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	var storage cart.Storage
	if cfg.Storage.Redis.Addr != "" {
		client, err := driver.ConnectRedis(ctx, cfg.Storage.Redis.Addr, cfg.Storage.Redis.Password, cfg.Storage.Redis.DB)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		storage = cart.NewRedisStorage(client, cfg.Customer.ID)
	} else {
		storage = cart.NewFileStorage(cfg.Storage.Path)
	}

	store := cart.NewStore(ctx, storage, logger)
	client := api.NewClient(cfg.API.BaseURL, logger)

	var conn *nats.Conn
	if cfg.Events.NATSURL != "" {
		c, err := driver.ConnectNATS(cfg.Events.NATSURL)
		if err != nil {
			logger.Warn("Order event stream unavailable", zap.Error(err))
		} else {
			conn = c
		}
	}

	svc = storefront.NewService(client, store, conn, storefront.Options{
		Email:     cfg.Customer.Email,
		PublicKey: cfg.Payments.PublicKey,
		Currency:  stripe.Currency(cfg.Currency),
	}, logger)
	return nil
}
