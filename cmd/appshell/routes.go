package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/knowcards/appshell/internal/core/domain"
	"github.com/knowcards/appshell/internal/core/service"
)

// routeOutput is one row of the route table with the guard's decision for
// the current session.
type routeOutput struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	Access   string `json:"access"`
	Redirect string `json:"redirect,omitempty"`
	Decision string `json:"decision"`
	Target   string `json:"target,omitempty"`
}

func newRoutesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "routes [name]",
		Short: "Print the route table and where each route leads right now",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), flags, func(a *app) error {
				if len(args) == 0 {
					return printJSON(cmd, routeTable(a.navigator, service.Routes()))
				}
				r, ok := service.Routes().ByName(args[0])
				if !ok {
					return fmt.Errorf("unknown route %q", args[0])
				}
				return printJSON(cmd, routeTable(a.navigator, domain.RouteTable{r})[0])
			})
		},
	}
}

func routeTable(nav *service.Navigator, routes domain.RouteTable) []routeOutput {
	out := make([]routeOutput, 0, len(routes))
	for _, r := range routes {
		row := routeOutput{
			Path:     r.Path,
			Name:     r.Name,
			Access:   r.Access.String(),
			Redirect: r.Redirect,
			Decision: "proceed",
		}
		if _, d := nav.Navigate(r.Path); d.Redirect {
			row.Decision = "redirect"
			row.Target = d.Target
		}
		out = append(out, row)
	}
	return out
}
