package syllabi

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/config"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/server"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/catalog"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/seed"
)

func newServeCmd() *cobra.Command {
	var seedOnStart bool

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the syllabi api server.",
		Long:  "Start the syllabi api server.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			serveConfig, err := newServeConfig()
			if err != nil {
				return err
			}
			return serve(cmd, serveConfig, seedOnStart)
		},
	}

	serveCmd.Flags().BoolVar(&seedOnStart, "seed", false, "Seed the builtin skill catalog before serving")
	serveCmd.Long += "\n\nEnvironment Variables:\n\n" + generateEnvHelpText(config.ServerConfig{}, "")

	return serveCmd
}

func serve(cmd *cobra.Command, cfg *config.ServerConfig, seedOnStart bool) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	svc, err := newServices(cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	if seedOnStart {
		if _, err := seed.New(svc.store, svc.embedder).Seed(ctx, catalog.All()); err != nil {
			return err
		}
	}

	apiServer, err := server.NewServer(cfg.WebServer, svc.store, svc.executor, svc.selector)
	if err != nil {
		return err
	}

	log.Info().
		Int("builtin_handlers", svc.registry.Len()).
		Bool("semantic_search", svc.embedder != nil).
		Msg("skills ready")

	return apiServer.ListenAndServe(ctx)
}
