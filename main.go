package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"library-catalog/config"
	"library-catalog/library"
	"library-catalog/shell"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if err := newRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "library",
		Short:         "Interactive department library",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := run(cfg); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return err
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.Banner, "banner", cfg.Banner, "text rendered as the startup banner")
	f.StringVar(&cfg.SeedFile, "seed", cfg.SeedFile, "department seed file (built-in data when empty)")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	f.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored output")
	f.BoolVar(&cfg.Plain, "plain", cfg.Plain, "use line prompts even on a terminal")
	return cmd
}

func run(cfg config.Config) error {
	if _, err := cfg.Level(); err != nil {
		return err
	}
	logger := cfg.Logger(os.Stderr)
	if cfg.NoColor {
		color.NoColor = true
	}

	seed, err := loadSeed(cfg.SeedFile)
	if err != nil {
		return err
	}

	manager, err := library.NewLibraryManager(logger)
	if err != nil {
		return fmt.Errorf("open library: %w", err)
	}
	defer manager.Close()

	if err := manager.Seed(seed); err != nil {
		return err
	}

	banner, err := shell.RenderBanner(cfg.Banner)
	if err != nil {
		return fmt.Errorf("something went wrong rendering the banner: %w", err)
	}
	fmt.Println(color.BlueString(banner))

	return shell.New(manager, newPrompter(cfg), os.Stdout, logger).Run()
}

func loadSeed(path string) (*library.SeedData, error) {
	if path == "" {
		return library.DefaultSeed()
	}
	return library.LoadSeedFile(path)
}

// newPrompter picks interactive widgets when both ends are a terminal.
func newPrompter(cfg config.Config) shell.Prompter {
	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	if cfg.Plain || !interactive {
		return shell.NewLinePrompter(os.Stdin, os.Stdout)
	}
	return shell.NewSurveyPrompter()
}
