package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routerservice/internal/errors"
)

func urlCmd(opts *rootOptions) *cobra.Command {
	var query map[string]string

	cmd := &cobra.Command{
		Use:   "url <route> [args...]",
		Short: "Generate the URL for a route",
		Long: `Generate the URL for a route and its models.

Examples:
  routerctl url blog.post 42
  routerctl url blog --query page=2`,
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

			u, err := s.service.GenerateURL(args[0], rest...)
			if err != nil {
				return errors.New("R302").
					WithDetail("Route " + args[0]).
					Wrap(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), u)
			return nil
		},
	}

	cmd.Flags().StringToStringVarP(&query, "query", "q", nil, "Query parameter (key=value), appended as options")

	return cmd
}
