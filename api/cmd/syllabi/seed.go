package syllabi

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/catalog"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/seed"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write the builtin skill catalog to the database",
		Long:  "Creates or updates every builtin skill by name and stores its embedding when embeddings are configured.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := newServeConfig()
			if err != nil {
				return err
			}

			svc, err := newServices(cfg)
			if err != nil {
				return err
			}
			defer svc.Close()

			result, err := seed.New(svc.store, svc.embedder).Seed(cmd.Context(), catalog.All())
			if err != nil {
				return err
			}

			cmd.Printf("created %d, updated %d, embedded %d, failed %d\n",
				result.Created, result.Updated, result.Embedded, result.Failed)
			if result.Failed > 0 {
				return fmt.Errorf("%d skills failed to seed", result.Failed)
			}
			return nil
		},
	}
}
