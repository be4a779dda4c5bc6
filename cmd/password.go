package cmd

import (
	"github.com/hukumai/hukumchat/internal"
	"github.com/spf13/cobra"
)

var resetPassword string

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password <email>",
	Short: "Request a password reset token",
	Long: `Request a password reset for the account registered under the given
email. The server responds the same way whether or not the email exists.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		client := newClient(cfg)
		var message string
		err = internal.ShowProgress(cmd.Context(), "Mengirim permintaan reset...", func() error {
			message, err = client.ForgotPassword(cmd.Context(), args[0])
			return err
		})
		if err != nil {
			return err
		}
		internal.PrintInfo(message)
		return nil
	},
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password <token>",
	Short: "Reset your password with a reset token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}

		password := resetPassword
		if password == "" {
			password, err = promptLine("Password baru: ")
			if err != nil {
				return err
			}
		}

		client := newClient(cfg)
		var message string
		err = internal.ShowProgress(cmd.Context(), "Mereset password...", func() error {
			message, err = client.ResetPassword(cmd.Context(), args[0], password)
			return err
		})
		if err != nil {
			return err
		}
		internal.PrintSuccess(message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(forgotPasswordCmd)
	rootCmd.AddCommand(resetPasswordCmd)
	resetPasswordCmd.Flags().StringVarP(&resetPassword, "password", "p", "", "New password (prompted when omitted)")
}
