// Package cmd is the scratch command line.
package cmd

import (
	"context"
	"errors"
	"sync"

	"scratch/client"
	"scratch/config"
	"scratch/notelist"

	"github.com/rohanthewiz/logger"
	"github.com/spf13/cobra"
)

// app is the state shared by every subcommand once the root has loaded
// the configuration
type app struct {
	cfgFile string
	cfg     *config.Config
}

// NewRootCmd builds the scratch command tree
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "scratch",
		Short: "A simple note taking app",
		Long: `Scratch keeps short notes on a notes server and lets you filter them
and search and replace across all of them at once.

Examples:
  scratch serve                          # Run the notes server
  scratch register                       # Create an account and log in
  scratch list --search todo             # List notes containing "todo"
  scratch replace --search foo --replace bar
  scratch tui                            # Interactive note list`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			logger.SetLogLevel(cfg.LogLevel)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "Path to a YAML config file")

	root.AddCommand(
		newServeCmd(a),
		newRegisterCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newListCmd(a),
		newReplaceCmd(a),
		newTuiCmd(a),
	)
	return root
}

// Execute runs the command line with ctx as the base context
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

var errNotLoggedIn = errors.New("not logged in, run `scratch login` or `scratch register` first")

// client returns an API client carrying the saved session, if any
func (a *app) client() (*client.Client, error) {
	token, err := client.LoadToken(a.cfg.TokenPath)
	if err != nil {
		return nil, err
	}
	return client.New(a.cfg.APIURL, token,
		client.WithTimeout(a.cfg.Timeout),
		client.WithMsgPack(a.cfg.MsgPack),
	), nil
}

// loadedController builds a controller over c and loads the notes.
// A failed load is returned rather than only reported.
func (a *app) loadedController(ctx context.Context, c *client.Client, opts ...notelist.Option) (*notelist.Controller, error) {
	if !c.Authenticated() {
		return nil, errNotLoggedIn
	}

	var (
		mu      sync.Mutex
		loadErr error
	)
	reporter := notelist.ReporterFunc(func(err error) {
		mu.Lock()
		loadErr = err
		mu.Unlock()
	})

	opts = append(opts,
		notelist.WithReporter(reporter),
		notelist.WithConcurrency(a.cfg.Concurrency),
		notelist.WithSuccessTTL(0),
	)
	ctrl := notelist.New(c, notelist.Session{Authenticated: true}, opts...)
	ctrl.Load(ctx)

	mu.Lock()
	defer mu.Unlock()
	if loadErr != nil {
		ctrl.Close()
		if client.IsUnauthorized(loadErr) {
			logger.Info("Saved session was rejected, run `scratch login` again")
		}
		return nil, loadErr
	}
	return ctrl, nil
}
