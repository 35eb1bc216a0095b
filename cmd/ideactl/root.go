// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/danielhkuo/onewave/apiclient"
	"github.com/danielhkuo/onewave/session"
)

const (
	defaultAPIURL = "http://localhost:3318"
	envPrefix     = "ONEWAVE"
	configDirName = ".onewave"

	// Commands annotated offline never contact the server
	annotationOffline = "offline"
)

// app is shared by every command of one invocation
type app struct {
	v       *viper.Viper
	cfgFile string

	client *apiclient.Client
	sess   *session.Session
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           "ideactl",
		Short:         "Command line client for onewave",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context(), cmd.Annotations[annotationOffline] == "true")
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.sess != nil {
				a.sess.Close()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default ~/.onewave/config.yaml)")
	flags.String("api-url", "", "onewave server URL (default "+defaultAPIURL+")")
	flags.String("token-file", "", "where the access token is kept (default ~/.onewave/token)")
	a.v.BindPFlag("api_url", flags.Lookup("api-url"))
	a.v.BindPFlag("token_file", flags.Lookup("token-file"))

	rootCmd.AddCommand(
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.feedCmd(),
		a.commentCmd(),
		a.applyCmd(),
		a.applicationsCmd(),
		a.ideaCmd(),
		a.roadmapCmd(),
	)
	return rootCmd
}

// setup loads configuration and restores the saved session
func (a *app) setup(ctx context.Context, offline bool) error {
	// A missing .env is fine
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	a.v.SetDefault("api_url", defaultAPIURL)
	a.v.SetDefault("token_file", filepath.Join(home, configDirName, "token"))
	a.v.SetEnvPrefix(envPrefix)
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(filepath.Join(home, configDirName))
	}
	if err := a.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	a.sess = session.New(session.NewFileStore(a.v.GetString("token_file")))
	a.client = apiclient.New(a.v.GetString("api_url"), apiclient.WithTokenSource(a.sess))
	if offline {
		return nil
	}

	if err := a.sess.Init(ctx, a.client); err != nil {
		// The stale token is already cleared; commands that need a login say so
		fmt.Fprintf(os.Stderr, "Warning: saved session discarded: %v\n", err)
	}
	return nil
}

func (a *app) requireLogin() error {
	if !a.sess.LoggedIn() {
		return errors.New("not logged in; run `ideactl login` first")
	}
	return nil
}

func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", what, arg)
	}
	return id, nil
}
