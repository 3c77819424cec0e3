package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

const Version = "0.4.0"

var (
	jsonOutput bool

	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	titleStyle  = lipgloss.NewStyle().Background(lipgloss.Color("#01FAC6")).Foreground(lipgloss.Color("#030303")).Bold(true).Padding(0, 1, 0)
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#01FAC6")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const Logo = `
███████╗██╗  ██╗██╗   ██╗██╗     ██╗███████╗████████╗
██╔════╝██║ ██╔╝╚██╗ ██╔╝██║     ██║██╔════╝╚══██╔══╝
███████╗█████╔╝  ╚████╔╝ ██║     ██║█████╗     ██║
╚════██║██╔═██╗   ╚██╔╝  ██║     ██║██╔══╝     ██║
███████║██║  ██╗   ██║   ███████╗██║██║        ██║
╚══════╝╚═╝  ╚═╝   ╚═╝   ╚══════╝╚═╝╚═╝        ╚═╝
`

var rootCmd = &cobra.Command{
	Use:   "skylift",
	Short: "Zero-configuration build and route detection",
	Long: Logo + `
Skylift inspects a project tree and decides which build handler owns every
serverless function, which handler builds the frontend, and the ordered route
tables that make file-system endpoints reachable at runtime.

Dynamic endpoints use bracketed path segments, e.g. api/users/[id].ts.`,
	Version: Version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:")+" "+err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit machine-readable JSON")
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(routesCmd)
}
