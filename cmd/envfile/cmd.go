// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/z5labs/envfile"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// New constructs the root envfile command.
func New() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:          "envfile",
		Short:        "Resolve .env style configuration files",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))
			slog.SetDefault(log)
		},
	}
	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "log resolution diagnostics to stderr")

	cmd.AddCommand(
		newRunCmd(),
		newPrintCmd(),
	)
	return cmd
}

func fileSources(files []string) []envfile.Source {
	srcs := make([]envfile.Source, 0, len(files))
	for _, f := range files {
		srcs = append(srcs, envfile.FromFile(f))
	}
	return srcs
}

func newRunCmd() *cobra.Command {
	var files []string
	var override bool

	cmd := &cobra.Command{
		Use:   "run -f FILE [-f FILE]... -- COMMAND [ARG]...",
		Short: "Run a command with variables resolved from .env files",
		Long: `Run resolves the given files over the live process environment and
executes the command inside the merged environment. Variables already
present in the process environment win over file values unless
--override is set. File values may interpolate process environment
variables and variables from earlier files.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			procEnv, err := envfile.Resolve(envfile.FromEnviron())
			if err != nil {
				return err
			}

			srcs := append([]envfile.Source{procEnv}, fileSources(files)...)
			vars, err := envfile.Resolve(srcs...)
			if err != nil {
				return err
			}
			slog.Debug("resolved variables", slog.Int("count", len(vars)))

			env := make([]string, 0, len(vars))
			for k, v := range vars {
				if !override {
					if cur, ok := procEnv[k]; ok {
						v = cur
					}
				}
				env = append(env, k+"="+v)
			}

			child := exec.CommandContext(cmd.Context(), args[0], args[1:]...)
			child.Env = env
			child.Stdin = os.Stdin
			child.Stdout = os.Stdout
			child.Stderr = os.Stderr
			slog.Debug("running command", slog.String("command", args[0]))
			return child.Run()
		},
	}
	cmd.Flags().StringArrayVarP(&files, "file", "f", []string{".env"}, "file to resolve, repeatable, later files override earlier ones")
	cmd.Flags().BoolVar(&override, "override", false, "let file values override existing process environment variables")
	return cmd
}

func newPrintCmd() *cobra.Command {
	var files []string
	var environ bool
	var format string

	cmd := &cobra.Command{
		Use:   "print -f FILE [-f FILE]...",
		Short: "Print the resolved variable mapping",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var srcs []envfile.Source
			if environ {
				srcs = append(srcs, envfile.FromEnviron())
			}
			srcs = append(srcs, fileSources(files)...)

			vars, err := envfile.Resolve(srcs...)
			if err != nil {
				return err
			}
			slog.Debug("resolved variables", slog.Int("count", len(vars)))

			switch format {
			case "env":
				return envfile.Write(cmd.OutOrStdout(), vars)
			case "json":
				b, err := json.MarshalIndent(vars, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return err
			case "yaml":
				b, err := yaml.Marshal(vars)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(b)
				return err
			default:
				return fmt.Errorf("unknown format: %q", format)
			}
		},
	}
	cmd.Flags().StringArrayVarP(&files, "file", "f", []string{".env"}, "file to resolve, repeatable, later files override earlier ones")
	cmd.Flags().BoolVar(&environ, "environ", false, "layer the files over the live process environment")
	cmd.Flags().StringVar(&format, "format", "env", "output format, one of env, json or yaml")
	return cmd
}
