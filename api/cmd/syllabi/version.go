package syllabi

import (
	"github.com/spf13/cobra"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/data"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(data.GetVersion())
		},
	}
}
