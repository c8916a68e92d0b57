package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rigid2d/internal/engineconfig"
)

func newRunCommand(app *Env, window WindowFunc) *cobra.Command {
	var scenePath string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the sandbox window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if window == nil {
				return errors.New("no window support in this build")
			}
			if err := openSession(app, scenePath); err != nil {
				return err
			}
			return window(cmd.Context(), app)
		},
	}
	cmd.Flags().StringVarP(&scenePath, "scene", "s", "", "scene file (default: sandbox.scene, then the built-in demo)")
	return cmd
}

func newSimulateCommand(app *Env) *cobra.Command {
	var (
		scenePath string
		ticks     int
		dt        float32
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Step the scene without a window and log where every body ends up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ticks < 0 {
				return fmt.Errorf("--ticks must not be negative, got %d", ticks)
			}
			if dt < 0 {
				return fmt.Errorf("--dt must not be negative, got %g", dt)
			}
			if err := openSession(app, scenePath); err != nil {
				return err
			}
			if err := app.Session.Run(cmd.Context(), ticks, dt); err != nil {
				return err
			}

			for _, b := range app.Session.Summary() {
				app.Log.Info("body",
					zap.String("name", b.Name),
					zap.Float32("x", b.Position.X),
					zap.Float32("y", b.Position.Y),
					zap.Float32("vx", b.Velocity.X),
					zap.Float32("vy", b.Velocity.Y),
					zap.Float32("rotation", b.Rotation),
					zap.Bool("anchored", b.Anchored),
					zap.Bool("resting", b.Resting),
				)
			}
			st := app.Session.Stats()
			app.Log.Info("simulation finished",
				zap.Uint64("ticks", st.Tick),
				zap.Int("bodies", st.Bodies),
				zap.Int("resting", st.Resting),
				zap.Int("contacts", st.Contacts),
			)
			return nil
		},
	}
	cmd.Flags().StringVarP(&scenePath, "scene", "s", "", "scene file (default: sandbox.scene, then the built-in demo)")
	cmd.Flags().IntVarP(&ticks, "ticks", "n", 600, "number of steps")
	cmd.Flags().Float32Var(&dt, "dt", 0, "step length in seconds (default: 1/sandbox.tick_rate)")
	return cmd
}

func newConfigCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "Write the default settings to the config file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipLoad: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flags.configPath
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			if err := engineconfig.Save(path, engineconfig.Default()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)
	return cmd
}
