package cmd

import (
	"strconv"

	"scratch/models"
	"scratch/web"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the notes server",
		Long: `Run the notes server: the JSON API used by the other commands and a
web page listing your notes.

The database lives at SCRATCH_DB_PATH and tokens are signed with
SCRATCH_JWT_SECRET. Set SCRATCH_ENCRYPTION_KEY to store note content
encrypted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Addr
			}

			if err := models.InitEncryption(a.cfg.EncryptKey); err != nil {
				return err
			}
			if err := models.InitDB(a.cfg.DBPath); err != nil {
				return serr.Wrap(err, "failed to initialize database")
			}
			defer models.CloseDB()

			if err := models.InitJWT(a.cfg.JWTSecret); err != nil {
				return err
			}
			if a.cfg.JWTSecret == "" {
				logger.Info("SCRATCH_JWT_SECRET not set, using the development key")
			}

			logger.Info("Note storage ready", "db", a.cfg.DBPath,
				"encrypted", strconv.FormatBool(models.IsEncryptionEnabled()))

			srv := web.NewServer(addr, a.cfg.LogLevel == "debug")
			return web.Run(srv, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from SCRATCH_ADDR)")
	return cmd
}
