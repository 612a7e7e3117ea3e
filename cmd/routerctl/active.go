package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func activeCmd(opts *rootOptions) *cobra.Command {
	var query map[string]string

	cmd := &cobra.Command{
		Use:   "active <route> [args...]",
		Short: "Check whether a route is active",
		Long: `Check whether a route, optionally with models and query parameters,
is part of the snapshot's currently resolved route. Prints "active" or
"inactive".

Query parameters are compared after the router fills in the route's
defaults, so --query page=1 matches a route whose default page is 1.

Examples:
  routerctl active blog
  routerctl active blog.post 42
  routerctl active blog --query page=2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openSession(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			rest, err := routeArgs(args[1:], query)
			if err != nil {
				return err
			}

			if s.service.IsActive(args[0], rest...) {
				fmt.Fprintln(cmd.OutOrStdout(), "active")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "inactive")
			}
			return nil
		},
	}

	cmd.Flags().StringToStringVarP(&query, "query", "q", nil, "Query parameter (key=value), appended as options")

	return cmd
}
