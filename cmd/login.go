package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/hukumai/hukumchat/internal"
	"github.com/spf13/cobra"
)

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login <username-or-email>",
	Short: "Log in to the service",
	Long: `Log in with a username or email address.

The username is stored locally so ask and history run under your
account. The password is read from stdin unless --password is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, dir, err := loadConfig()
		if err != nil {
			return err
		}

		password := loginPassword
		if password == "" {
			password, err = promptLine("Password: ")
			if err != nil {
				return err
			}
		}

		client := newClient(cfg)
		var user *internal.AuthUser
		err = internal.ShowProgress(cmd.Context(), "Masuk...", func() error {
			user, err = client.Login(cmd.Context(), args[0], password)
			return err
		})
		if err != nil {
			return err
		}

		cfg.Username = user.Username
		cfg.ClearSession()
		if err := internal.SaveConfig(dir, cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		name := user.FullName
		if name == "" {
			name = user.Username
		}
		internal.PrintSuccess(fmt.Sprintf("Selamat datang, %s", name))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the stored username",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, dir, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Username == "" {
			internal.PrintInfo("Not logged in")
			return nil
		}
		cfg.Username = ""
		cfg.ClearSession()
		if err := internal.SaveConfig(dir, cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		internal.PrintSuccess("Logged out")
		return nil
	},
}

func promptLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted when omitted)")
}
