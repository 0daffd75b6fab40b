package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/seqmeta-backend/internal/app"
	types "github.com/yungbote/seqmeta-backend/internal/domain"
)

var createUserFlags struct {
	email    string
	password string
	admin    bool
}

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create an account that can log in and upload metadata",
	RunE:  runCreateUser,
}

func init() {
	f := createUserCmd.Flags()
	f.StringVar(&createUserFlags.email, "email", "", "Account email (required)")
	f.StringVar(&createUserFlags.password, "password", "", "Account password (required)")
	f.BoolVar(&createUserFlags.admin, "admin", false, "Allow the account to delete samples")

	_ = createUserCmd.MarkFlagRequired("email")
	_ = createUserCmd.MarkFlagRequired("password")
}

func runCreateUser(cmd *cobra.Command, _ []string) error {
	return withApp(func(a *app.App) error {
		u, err := a.Services.Auth.CreateUser(cmd.Context(), &types.User{
			Email:    createUserFlags.email,
			Password: createUserFlags.password,
			IsAdmin:  createUserFlags.admin,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created user %s (%s)\n", u.Email, u.ID)
		return nil
	})
}
