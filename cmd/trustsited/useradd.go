package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/thetrustgroup/trustsite/config"
	"github.com/thetrustgroup/trustsite/internal/store"
)

func useraddCMD() *cobra.Command {
	var cfgPath string
	var email string
	var password string

	var useradd = &cobra.Command{
		Use:   "useradd",
		Short: "Create an admin user for the submissions inbox",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || len(password) < 8 {
				return fmt.Errorf("--email required and --password must be at least 8 characters")
			}
			cfg := config.LoadConfig(cfgPath)
			ctx := context.Background()
			st, err := store.NewWithDSN(ctx, cfg.Storage.Postgres.DSN())
			if err != nil {
				return err
			}
			defer st.DB.Close()
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			if err := st.CreateUser(ctx, email, string(hash)); err != nil {
				return err
			}
			fmt.Printf("user %s created\n", email)
			return nil
		},
	}
	useradd.Flags().StringVar(&email, "email", "", "admin email")
	useradd.Flags().StringVar(&password, "password", "", "admin password (min 8 chars)")
	useradd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")

	return useradd
}
