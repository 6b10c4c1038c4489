package cli

import (
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/rhyton-cad/rhyton/internal/colour"
	"github.com/rhyton-cad/rhyton/internal/visualize"
)

var (
	visualizeObjects []string
	visualizeDots    bool

	gradientObjects []string
	gradientStart   = colour.RGB{R: 200, G: 200, B: 255}
	gradientEnd     = colour.RGB{R: 50, G: 50, B: 255}

	clearObjects []string
)

var visualizeCmd = &cobra.Command{
	Use:   "visualize <key>",
	Short: "Colour objects by a tagged value using a named colour scheme",
	Long: `Colour objects by their tagged value for the given key. The scheme named
after the key is created on first use and extended when new values appear;
colours already assigned to a value never change.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		key := args[0]
		ids := s.targetObjects(visualizeObjects)

		records, err := s.vis.Apply(ids, key)
		if err != nil {
			return err
		}

		if visualizeDots {
			if _, err := s.vis.Summarize(ids, key); err != nil {
				return err
			}
		}

		printRecords(key, records)
		return nil
	},
}

var gradientCmd = &cobra.Command{
	Use:   "gradient <key>",
	Short: "Colour objects along a gradient over a numeric tagged value",
	Long: `Colour objects by interpolating between two endpoint colours across the
sorted range of their values for the given key. The mapping is recomputed
from scratch on every run and is not stored in the document.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		key := args[0]
		ids := s.targetObjects(gradientObjects)

		records, err := s.vis.ApplyGradient(ids, key, gradientStart, gradientEnd)
		if err != nil {
			return err
		}

		printRecords(key, records)
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Restore original colours and remove rhyton annotations",
	Long: `Restore the colours objects had before rhyton touched them. Without
--objects this clears everything rhyton changed, including text dots and
groups it created.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		return s.vis.Clear(clearObjects)
	},
}

func init() {
	visualizeCmd.Flags().StringSliceVar(&visualizeObjects, "objects", nil, "object ids to visualize (default: all)")
	visualizeCmd.Flags().BoolVar(&visualizeDots, "dots", false, "place a text dot summary per value group")

	gradientCmd.Flags().StringSliceVar(&gradientObjects, "objects", nil, "object ids to visualize (default: all)")
	gradientCmd.Flags().Var(newRGBValue(&gradientStart), "start", "gradient start colour (hex or r,g,b)")
	gradientCmd.Flags().Var(newRGBValue(&gradientEnd), "end", "gradient end colour (hex or r,g,b)")

	clearCmd.Flags().StringSliceVar(&clearObjects, "objects", nil, "object ids to clear (default: everything rhyton touched)")
}

func printRecords(key string, records []visualize.ObjectColor) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"GUID", key, "COLOUR"})
	for _, rec := range records {
		table.Append([]string{rec.ID, rec.Value, rec.Color})
	}
	table.Render()
}
