package cmd

import (
	"fmt"

	"github.com/hukumai/hukumchat/internal"
	"github.com/spf13/cobra"
)

var (
	registerEmail    string
	registerFullName string
	registerPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create a new account",
	Long: `Create a new account on the service.

Examples:
  hukumchat register budi --email budi@example.com
  hukumchat register budi --email budi@example.com --name "Budi Santoso"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, dir, err := loadConfig()
		if err != nil {
			return err
		}

		password := registerPassword
		if password == "" {
			password, err = promptLine("Password: ")
			if err != nil {
				return err
			}
			confirm, err := promptLine("Ulangi password: ")
			if err != nil {
				return err
			}
			if password != confirm {
				return fmt.Errorf("passwords do not match")
			}
		}

		client := newClient(cfg)
		var user *internal.AuthUser
		err = internal.ShowProgress(cmd.Context(), "Mendaftarkan akun...", func() error {
			user, err = client.Register(cmd.Context(), args[0], registerEmail, password, registerFullName)
			return err
		})
		if err != nil {
			return err
		}

		cfg.Username = user.Username
		cfg.ClearSession()
		if err := internal.SaveConfig(dir, cfg); err != nil {
			internal.LogWarn("Failed to save config: %v", err)
		}

		internal.PrintSuccess(fmt.Sprintf("Akun %s berhasil dibuat", user.Username))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "Email address (required)")
	registerCmd.Flags().StringVar(&registerFullName, "name", "", "Full name")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "Password (prompted when omitted)")
	_ = registerCmd.MarkFlagRequired("email")
}
