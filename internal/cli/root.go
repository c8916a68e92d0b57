// Package cli holds the cobra commands of the sandbox executable. The window
// loop is injected by main so that everything here runs headless.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"rigid2d/internal/engineconfig"
	"rigid2d/internal/env"
	"rigid2d/internal/logger"
	"rigid2d/internal/sandbox"
	"rigid2d/internal/scene"
)

// skipLoad marks commands that run before a valid config exists.
const skipLoad = "skip-load"

// Env is what a command needs once config and logging are set up.
type Env struct {
	Config  engineconfig.Config
	Log     *logger.Logger
	Session *sandbox.Session
}

// WindowFunc runs the interactive window until it is closed or ctx ends.
type WindowFunc func(ctx context.Context, app *Env) error

type rootFlags struct {
	configPath string
	envFile    string
	logLevel   string
}

// NewRootCommand builds the command tree. window backs the run command.
func NewRootCommand(window WindowFunc) *cobra.Command {
	flags := &rootFlags{}
	app := &Env{}

	root := &cobra.Command{
		Use:           "sandbox",
		Short:         "2D rigid body physics sandbox",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipLoad] != "" {
				return nil
			}
			fromFile, err := env.Load(flags.envFile, engineconfig.EnvPrefix+"_")
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			app.Config = cfg
			app.Log = logger.NewWithWriter(cfg.Logger, zapcore.AddSync(cmd.ErrOrStderr()))
			if len(fromFile) > 0 {
				app.Log.Debug("environment file applied", zap.String("file", flags.envFile), zap.Strings("vars", fromFile))
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app.Log == nil {
				return nil
			}
			return app.Log.Close()
		},
	}
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", engineconfig.DefaultPath, "config file")
	root.PersistentFlags().StringVar(&flags.envFile, "env-file", env.DefaultFile, "KEY=VALUE file with "+engineconfig.EnvPrefix+"_* overrides")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "override logger.level (debug, info, warn, error)")

	root.AddCommand(
		newRunCommand(app, window),
		newSimulateCommand(app),
		newConfigCommand(flags),
	)
	return root
}

// Execute runs the command tree and reports a failure on stderr.
func Execute(ctx context.Context, root *cobra.Command) int {
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "error:", err)
		return 1
	}
	return 0
}

// loadConfig reads the config file. The default path may be missing; a path
// given explicitly must exist.
func loadConfig(cmd *cobra.Command, flags *rootFlags) (engineconfig.Config, error) {
	if cmd.Flags().Changed("config") {
		if _, err := os.Stat(flags.configPath); errors.Is(err, fs.ErrNotExist) {
			return engineconfig.Config{}, fmt.Errorf("config file %s: %w", flags.configPath, err)
		}
	}
	cfg, err := engineconfig.Load(flags.configPath)
	if err != nil {
		return engineconfig.Config{}, err
	}
	if flags.logLevel != "" {
		cfg.Logger.Level = flags.logLevel
	}
	return cfg, nil
}

// openSession loads the scene named by path, falling back to the configured
// scene and then to the built-in demo, and starts a session on it.
func openSession(app *Env, path string) error {
	if path == "" {
		path = app.Config.Sandbox.Scene
	}
	var scn *scene.Scene
	if path == "" {
		scn = scene.Default(float32(app.Config.Sandbox.Width), float32(app.Config.Sandbox.Height))
	} else {
		var err error
		if scn, err = scene.Load(path); err != nil {
			return err
		}
	}
	s, err := sandbox.New(app.Config, scn, app.Log.Logger)
	if err != nil {
		return err
	}
	app.Session = s
	app.Log.Debug("session ready", zap.String("scene", scn.Name), zap.Float32("tick", app.Config.Sandbox.TickSeconds()))
	return nil
}
