package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (f CommandFactory) createMailCommand() *cobra.Command {
	mail := &cobra.Command{
		Use:   "mail",
		Short: "Mail relay operations",
	}
	mail.AddCommand(&cobra.Command{
		Use:   "send <email> <fullName>",
		Short: "Send the purchase confirmation email to one recipient",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.setup()
			if err != nil {
				return err
			}
			m, err := f.NewMailer(cfg)
			if err != nil {
				return err
			}
			if err := m.SendConfirmationEmail(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Confirmation sent to %s\n", args[0])
			return nil
		},
	})
	return mail
}
