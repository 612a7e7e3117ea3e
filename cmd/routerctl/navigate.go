package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/routerservice/internal/errors"
	"github.com/vango-dev/routerservice/pkg/routerservice"
)

func navigateCmd(opts *rootOptions) *cobra.Command {
	var (
		query   map[string]string
		replace bool
		save    bool
	)

	cmd := &cobra.Command{
		Use:   "navigate <target> [args...]",
		Short: "Navigate to a route or URL",
		Long: `Navigate the snapshot's router to a route name or URL and print the
resulting state.

With --replace the current history entry is replaced instead of a new
one being pushed. With --save the resulting state is written back to
the snapshot file.

Examples:
  routerctl navigate blog.post 42
  routerctl navigate /blog/42?sort=asc --replace
  routerctl navigate blog --query page=2 --save`,
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

			var t routerservice.Transition
			if replace {
				t = s.service.NavigateReplacing(args[0], rest...)
			} else {
				t = s.service.Navigate(args[0], rest...)
			}

			if err := s.engine.Flush(); err != nil {
				return errors.New("R301").
					WithDetail("Navigating to " + args[0] + " failed").
					Wrap(err)
			}
			if err := t.Wait(cmd.Context()); err != nil {
				return errors.New("R301").Wrap(err)
			}

			w := cmd.OutOrStdout()
			success(w, "%s %s", t.Mode(), args[0])
			info(w, "Route: %s", s.service.CurrentRouteName())
			info(w, "URL:   %s", s.service.CurrentURL())

			if save {
				if err := s.save(); err != nil {
					return err
				}
				info(w, "Saved %s", s.snapshotPath)
			}
			return nil
		},
	}

	cmd.Flags().StringToStringVarP(&query, "query", "q", nil, "Query parameter (key=value), appended as options")
	cmd.Flags().BoolVarP(&replace, "replace", "r", false, "Replace the current history entry")
	cmd.Flags().BoolVar(&save, "save", false, "Write the resulting state back to the snapshot")

	return cmd
}
