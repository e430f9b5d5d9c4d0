package cmd

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/abhisek/eduvantage/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the study actions as a JSON HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := buildDeps(ctx, cmd, depsOptions{console: true, requireProvider: true})
		if err != nil {
			return err
		}
		defer d.Close()

		if d.cfg.Log.Mode == "prod" {
			gin.SetMode(gin.ReleaseMode)
		}

		addr := d.cfg.Server.Addr
		if a, _ := cmd.Flags().GetString("addr"); a != "" {
			addr = a
		}

		router := server.NewRouter(server.RouterConfig{
			StudyHandler: server.NewStudyHandler(d.study, d.cfg.PersonaValue()),
			Log:          d.log,
			AllowOrigins: d.cfg.Server.AllowOrigins,
		})
		return server.Serve(ctx, addr, router, d.log)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config, 127.0.0.1:8080)")
}
