package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"skylift/cmd/ui/detection"
	"skylift/pkg/config"
	"skylift/pkg/detect"
)

var detectCmd = &cobra.Command{
	Use:   "detect [PROJECT_PATH]",
	Short: "Detect build handlers and routes for a project",
	Long: Logo + `
Scans the project tree, reads package.json and skylift.toml, and reports which
build handler owns every serverless function and how requests are routed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDetect,
}

func runDetect(cmd *cobra.Command, args []string) error {
	projectPath, err := resolveProjectPath(args)
	if err != nil {
		return err
	}

	result, err := runDetection(projectPath)
	if err != nil {
		return err
	}

	if jsonOutput || !term.IsTerminal(int(os.Stdout.Fd())) {
		return emitJSON(result)
	}

	p := tea.NewProgram(detection.NewModel(result))
	_, err = p.Run()
	return err
}

// resolveProjectPath validates the optional positional argument, defaulting
// to the current directory.
func resolveProjectPath(args []string) (string, error) {
	projectPath := "."
	if len(args) > 0 {
		projectPath = args[0]
	}
	projectPath = filepath.Clean(projectPath)

	info, err := os.Stat(projectPath)
	if err != nil {
		return "", fmt.Errorf("cannot access path %q: %w", projectPath, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path %q is not a directory", projectPath)
	}
	return projectPath, nil
}

// runDetection gathers the file listing, manifest, and settings, then runs
// the detection core.
func runDetection(projectPath string) (*detect.Result, error) {
	files, err := scanTree(projectPath)
	if err != nil {
		return nil, err
	}
	pkg, err := readPackageJSON(projectPath)
	if err != nil {
		return nil, err
	}
	opts, err := config.Load(projectPath)
	if err != nil {
		return nil, err
	}
	return detect.Detect(files, pkg, opts)
}

func emitJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
