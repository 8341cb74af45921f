package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/qkit-edu/qkit/internal/router"
)

// routeResult is the JSON shape of `qkit route`.
type routeResult struct {
	Requested  string            `json:"requested"`
	Path       string            `json:"path"`
	Name       string            `json:"name"`
	View       string            `json:"view"`
	Title      string            `json:"title"`
	Params     map[string]string `json:"params,omitempty"`
	Redirected bool              `json:"redirected"`
	Meta       router.Meta       `json:"meta"`
}

func (a *app) newRouteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route <path>",
		Short: "Show where a path leads for the current session",
		Long: `Resolve a path against the route table and run the navigation guards
with the current session, printing the final location.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(false); err != nil {
				return err
			}
			nav, err := a.router.Push(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("route %s: %w", args[0], err)
			}
			to := nav.To
			res := routeResult{
				Requested:  args[0],
				Path:       to.FullPath,
				Name:       to.Name,
				View:       to.View,
				Title:      nav.Title,
				Params:     to.Params,
				Redirected: nav.Redirected,
				Meta:       to.Meta(),
			}
			if a.jsonOutput {
				return a.printJSON(res)
			}
			if res.Redirected {
				fmt.Fprintf(a.out, "%s -> redirected to %s\n", res.Requested, res.Path)
			} else {
				fmt.Fprintf(a.out, "%s\n", res.Path)
			}
			fmt.Fprintf(a.out, "  name   %s\n", res.Name)
			fmt.Fprintf(a.out, "  view   %s\n", res.View)
			fmt.Fprintf(a.out, "  title  %s\n", res.Title)
			keys := make([]string, 0, len(res.Params))
			for k := range res.Params {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(a.out, "  param  %s=%s\n", k, res.Params[k])
			}
			return nil
		},
	}
}
