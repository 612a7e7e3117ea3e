package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routerservice/pkg/routerservice"
)

func classifyCmd() *cobra.Command {
	var (
		query    map[string]string
		activity bool
	)

	cmd := &cobra.Command{
		Use:   "classify <target> [args...]",
		Short: "Show how a call's arguments are interpreted",
		Long: `Show how the router service interprets a navigation target and its
trailing arguments, without touching any router state.

A target that is empty or starts with "/" is a URL and its arguments
are ignored. Otherwise the target is a route name, the arguments are
models and a trailing options value supplies query parameters.

Examples:
  routerctl classify /blog/42
  routerctl classify blog.post 42
  routerctl classify blog.post 42 '{"queryParams":{"sort":"asc"}}'
  routerctl classify --activity blog --query page=2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rest, err := routeArgs(args[1:], query)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			if activity {
				q := routerservice.ParseActivityQuery(args[0], rest...)
				fmt.Fprintf(w, "Kind:         activity\n")
				fmt.Fprintf(w, "Route:        %s\n", q.RouteName)
				fmt.Fprintf(w, "Models:       %s\n", jsonString(q.Models))
				fmt.Fprintf(w, "Query params: %s\n", jsonString(q.QueryParams))
				return nil
			}

			req := routerservice.ParseRequest(args[0], rest...)
			if req.IsURL {
				fmt.Fprintf(w, "Kind:         url\n")
				fmt.Fprintf(w, "Target:       %q\n", req.Target)
				if len(rest) > 0 {
					fmt.Fprintf(w, "Ignored:      %d argument(s)\n", len(rest))
				}
				return nil
			}
			fmt.Fprintf(w, "Kind:         route\n")
			fmt.Fprintf(w, "Target:       %s\n", req.Target)
			fmt.Fprintf(w, "Models:       %s\n", jsonString(req.Models))
			fmt.Fprintf(w, "Query params: %s\n", jsonString(req.QueryParams))
			return nil
		},
	}

	cmd.Flags().StringToStringVarP(&query, "query", "q", nil, "Query parameter (key=value), appended as options")
	cmd.Flags().BoolVar(&activity, "activity", false, "Classify as an activity check instead of a navigation")

	return cmd
}
