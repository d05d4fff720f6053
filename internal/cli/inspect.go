package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/shapegen/internal/dataset"
	"github.com/ironsheep/shapegen/internal/imaging"
)

// inspectCommand reads stored samples back and checks them.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <sample-dir>...",
		Short: "Verify stored samples against their metadata",
		Long: `Inspect reads each sample directory written by generate, checks that the
instance and class masks agree, and recomputes the instance statistics to
compare them with meta.json. It fails if any sample does not check out.`,
		Example: `  shapegen inspect dataset/sample_00000
  shapegen inspect dataset/sample_*`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cache := imaging.NewMaskCache()
			bad := 0
			for _, dir := range args {
				stored, err := dataset.ReadSample(dir, cache)
				if err != nil {
					return err
				}
				c.Logger.Debug("inspected sample", "dir", dir, "instances", stored.Stats.Count)
				if !stored.Report.Consistent || !stored.MatchesMeta() {
					bad++
					c.Logger.Warn("sample failed inspection", "dir", dir, "matches_meta", stored.MatchesMeta())
					for _, p := range stored.Report.Problems {
						c.Logger.Warn(p, "dir", dir)
					}
					continue
				}
				printSuccess(out, "%s: %d instances, %d hidden", dir, stored.Stats.Count, len(stored.Stats.Hidden))
			}
			if bad > 0 {
				return fmt.Errorf("%d of %d samples failed inspection", bad, len(args))
			}
			return nil
		},
	}
}
