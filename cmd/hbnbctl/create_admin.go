package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Joan938/holbertonschool-hbnb/credential"
	"github.com/Joan938/holbertonschool-hbnb/facade"
)

func createAdminCmd(opts *options) *cobra.Command {
	var in facade.CreateUserInput
	var cost int

	c := &cobra.Command{
		Use:   "create-admin",
		Short: "Create the administrator account, or confirm it exists",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, release, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			hbnb := facade.NewService(store, credential.NewBcrypt(cost), opts.logger(cmd))
			admin, err := hbnb.EnsureAdmin(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s <%s>\n", admin.ID, admin.Email)
			return nil
		},
	}

	c.Flags().StringVar(&in.Email, "email", "", "Administrator email (required)")
	c.Flags().StringVar(&in.Password, "password", "", "Administrator password (required)")
	c.Flags().StringVar(&in.FirstName, "first-name", "Admin", "Administrator first name")
	c.Flags().StringVar(&in.LastName, "last-name", "HBnB", "Administrator last name")
	c.Flags().IntVar(&cost, "bcrypt-cost", 0, "bcrypt cost (0 uses the library default)")

	_ = c.MarkFlagRequired("email")
	_ = c.MarkFlagRequired("password")
	return c
}
