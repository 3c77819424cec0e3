package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"skylift/pkg/detect"
)

var routesCmd = &cobra.Command{
	Use:   "routes [PROJECT_PATH]",
	Short: "Print the ordered route tables for a project",
	Long: Logo + `
Runs detection and prints the three ordered route tables. Rules are matched
top to bottom by the routing engine, so the printed order is the evaluation
order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRoutes,
}

func runRoutes(cmd *cobra.Command, args []string) error {
	projectPath, err := resolveProjectPath(args)
	if err != nil {
		return err
	}

	result, err := runDetection(projectPath)
	if err != nil {
		return err
	}

	if jsonOutput {
		return emitJSON(map[string][]detect.Route{
			"defaultRoutes":  result.DefaultRoutes,
			"redirectRoutes": result.RedirectRoutes,
			"rewriteRoutes":  result.RewriteRoutes,
		})
	}

	printRouteTable("Default routes", result.DefaultRoutes)
	printRouteTable("Redirect routes", result.RedirectRoutes)
	printRouteTable("Rewrite routes", result.RewriteRoutes)
	return nil
}

func printRouteTable(name string, routes []detect.Route) {
	fmt.Println(titleStyle.Render(name))
	if len(routes) == 0 {
		fmt.Println(dimStyle.Render("  (none)"))
		fmt.Println()
		return
	}
	for i, route := range routes {
		fmt.Printf("  %s %s\n", accentStyle.Render(fmt.Sprintf("%d.", i+1)), describeRoute(route))
	}
	fmt.Println()
}

func describeRoute(route detect.Route) string {
	if route.Handle != "" {
		return fmt.Sprintf("handle: %s", route.Handle)
	}
	switch {
	case route.Status == 308:
		return fmt.Sprintf("%s -> %s (308)", route.Src, route.Headers["Location"])
	case route.Status != 0 && route.Dest == "":
		desc := fmt.Sprintf("%s (%d)", route.Src, route.Status)
		if route.Continue {
			desc += dimStyle.Render(" [continue]")
		}
		return desc
	}
	desc := fmt.Sprintf("%s -> %s", route.Src, route.Dest)
	if route.Check {
		desc += dimStyle.Render(" [check]")
	}
	if route.Continue {
		desc += dimStyle.Render(" [continue]")
	}
	return desc
}
