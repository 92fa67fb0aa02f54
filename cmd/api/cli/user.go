// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/dishhub/internal/platform/apperr"
	pgstore "github.com/taibuivan/dishhub/internal/platform/postgres"
	"github.com/taibuivan/dishhub/internal/platform/sec"
	"github.com/taibuivan/dishhub/internal/users/auth"
)

// NewUserCommand returns "user" with its "create" sub-command. The API has no
// registration endpoint, so accounts are created here.
func NewUserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	var login, password, role string

	create := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := sec.ParseRole(role)
			if err != nil {
				return err
			}

			cfg, log, closer, err := bootstrap()
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
			if err != nil {
				return err
			}
			defer pool.Close()

			// Sessions and tokens are not needed to create an account.
			service := auth.NewService(auth.NewAccountRepository(pool), nil, nil, cfg.AccessTokenTTL, log)

			account, err := service.CreateAccount(ctx, login, password, parsed)
			if ae := apperr.As(err); ae != nil && len(ae.Details) > 0 {
				return fmt.Errorf("%s: %v", ae.Message, ae.Fields())
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %s account %q (%s)\n", account.Role, account.Login, account.ID)
			return nil
		},
	}

	create.Flags().StringVar(&login, "login", "", "account login")
	create.Flags().StringVar(&password, "password", "", "account password")
	create.Flags().StringVar(&role, "role", string(sec.RoleGuest), "account role (admin, guest)")
	_ = create.MarkFlagRequired("login")
	_ = create.MarkFlagRequired("password")

	cmd.AddCommand(create)
	return cmd
}
