package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hpl-lang/hpl/internal/module/stdlib"
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "Inspect and manage the module search path",
}

var modulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List fixed built-in modules and configured search-path entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Built-in modules:")
		for _, name := range stdlib.Names() {
			fmt.Printf("  %s\n", name)
		}

		paths, err := readSearchPathConfig()
		if err != nil {
			return err
		}
		fmt.Println("Search path:")
		for _, p := range paths {
			fmt.Printf("  %s\n", p)
		}
		return nil
	},
}

var modulesAddCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Add a directory to the persisted module search path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := readSearchPathConfig()
		if err != nil {
			return err
		}
		for _, p := range paths {
			if p == args[0] {
				return nil
			}
		}
		paths = append(paths, args[0])
		return writeSearchPathConfig(paths)
	},
}

var modulesRemoveCmd = &cobra.Command{
	Use:   "remove <path>",
	Short: "Remove a directory from the persisted module search path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := readSearchPathConfig()
		if err != nil {
			return err
		}
		kept := paths[:0]
		for _, p := range paths {
			if p != args[0] {
				kept = append(kept, p)
			}
		}
		return writeSearchPathConfig(kept)
	},
}

func init() {
	rootCmd.AddCommand(modulesCmd)
	modulesCmd.AddCommand(modulesListCmd, modulesAddCmd, modulesRemoveCmd)
}

// searchPathConfigFile returns the location of the persisted module
// search path list, one directory per line.
func searchPathConfigFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "hpl", "modules.txt"), nil
}

func readSearchPathConfig() ([]string, error) {
	path, err := searchPathConfigFile()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			paths = append(paths, line)
		}
	}
	return paths, nil
}

func writeSearchPathConfig(paths []string) error {
	path, err := searchPathConfigFile()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strings.Join(paths, "\n")+"\n"), 0o644)
}
