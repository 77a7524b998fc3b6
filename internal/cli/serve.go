package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pinboard/pkg/server"
	"github.com/matzehuels/pinboard/pkg/store"
)

// serveCommand creates the "serve" command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the design API over HTTP",
		Example: `  pinboard serve
  pinboard serve --addr 127.0.0.1:9000
  curl localhost:8080/designs/3/91`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}

			var st store.Store
			if s, err := c.newStore(ctx, ""); err != nil {
				c.Logger.Warn("design store unavailable, /stored disabled", "err", err)
			} else {
				st = s
				defer st.Close()
			}

			if addr == "" {
				addr = c.Config.Server.Addr
			}
			srv := server.New(server.Options{
				Pipeline:      runner,
				Store:         st,
				MaxIterations: c.Config.Solver.MaxIterations,
				Weights:       c.Config.Solver.Weights,
				Logger:        c.Logger,
			})
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching entirely")

	return cmd
}
