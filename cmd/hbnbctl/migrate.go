package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Joan938/holbertonschool-hbnb/db"
	"github.com/Joan938/holbertonschool-hbnb/migrations"
)

func migrateCmd(opts *options) *cobra.Command {
	var list bool

	c := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := migrations.Names()
			if err != nil {
				return err
			}
			if list {
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			if opts.databaseURL == "" {
				return errors.New("database url is required (use --database-url or DATABASE_URL)")
			}
			pool, err := db.NewPool(cmd.Context(), opts.databaseURL, 1)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := migrations.Apply(cmd.Context(), pool); err != nil {
				return err
			}
			opts.logger(cmd).WithField("count", len(names)).Info("migrations applied")
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migrations\n", len(names))
			return nil
		},
	}

	c.Flags().BoolVar(&list, "list", false, "Print the embedded migrations without applying them")
	return c
}
