package main

import (
	"errors"
	"fmt"
	"os"

	"uniconnect/internal/auth"
	"uniconnect/internal/domain"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var errBadSecret = errors.New("admin secret does not match admin.secret-hash")

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an API token for the gateway, an operator or a single user",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, _, err := bootstrap()
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		role, _ := flags.GetString("role")
		subject, _ := flags.GetString("subject")
		userID, _ := flags.GetInt64("user-id")
		expiry, _ := flags.GetDuration("expiry")
		secret, _ := flags.GetString("secret")
		if secret == "" {
			secret = os.Getenv("UNICONNECT_ADMIN_SECRET")
		}

		if cfg.Admin.SecretHash == "" {
			return errors.New("admin.secret-hash is not configured; create one with `uniconnect hash-secret`")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(cfg.Admin.SecretHash), []byte(secret)); err != nil {
			return errBadSecret
		}

		if subject == "" {
			subject = role
		}
		tok, err := auth.GenerateToken(&cfg.JWT, subject, role, userID, expiry)
		if err != nil {
			return err
		}
		fmt.Println(tok)
		return nil
	},
}

var hashSecretCmd = &cobra.Command{
	Use:   "hash-secret SECRET",
	Short: "Print the bcrypt hash to store in admin.secret-hash",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		hash, err := bcrypt.GenerateFromPassword([]byte(args[0]), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		fmt.Println(string(hash))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd, hashSecretCmd)

	tokenCmd.Flags().String("role", domain.RoleGateway, "token role: GATEWAY, ADMIN or USER")
	tokenCmd.Flags().String("subject", "", "token subject (defaults to the role)")
	tokenCmd.Flags().Int64("user-id", 0, "user the token is scoped to; required for USER tokens")
	tokenCmd.Flags().Duration("expiry", 0, "token lifetime (defaults to jwt.expiry)")
	tokenCmd.Flags().String("secret", "", "admin secret (or UNICONNECT_ADMIN_SECRET)")
}
