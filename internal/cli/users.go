package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"orion_service/internal/models"
)

func (f CommandFactory) createUsersCommand() *cobra.Command {
	users := &cobra.Command{
		Use:   "users",
		Short: "Inspect and update purchaser records",
	}
	users.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print every purchaser record as JSON",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return f.withUsers(cmd.Context(), func(ctx context.Context, u Users) error {
					list, err := u.List(ctx)
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), list)
				})
			},
		},
		&cobra.Command{
			Use:   "set-status <walletAddress> <status>",
			Short: "Set the shipment status of the first record with the wallet address",
			Long: `Set the shipment status of the first record with the wallet address.
Status is one of "Not Shipped", "In Progress" or "Shipped".`,
			Args: cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				status, err := models.ParseShipmentStatus(args[1])
				if err != nil {
					return err
				}
				return f.withUsers(cmd.Context(), func(ctx context.Context, u Users) error {
					user, err := u.UpdateShipmentStatus(ctx, args[0], status)
					if err != nil {
						return err
					}
					if user == nil {
						return fmt.Errorf("no user with wallet address %s", args[0])
					}
					return printJSON(cmd.OutOrStdout(), user)
				})
			},
		},
	)
	return users
}

func (f CommandFactory) withUsers(ctx context.Context, fn func(context.Context, Users) error) error {
	cfg, err := f.setup()
	if err != nil {
		return err
	}
	u, err := f.OpenUsers(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := u.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("MongoDB disconnect failed")
		}
	}()
	return fn(ctx, u)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
