package cli

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/rhyton-cad/rhyton/internal/format"
	"github.com/rhyton-cad/rhyton/pkg/host"
)

var (
	objectAddName string
	objectAddMin  []float64
	objectAddMax  []float64

	usertextSetObjects []string
	usertextGetObjects []string
)

var objectCmd = &cobra.Command{
	Use:   "object",
	Short: "Manage objects in the file-backed document",
}

var objectAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an object to the document",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(objectAddMin) != 3 || len(objectAddMax) != 3 {
			return fmt.Errorf("--min and --max each need three coordinates")
		}

		s, err := openSession()
		if err != nil {
			return err
		}

		box := host.Box{
			Min: host.Point{X: objectAddMin[0], Y: objectAddMin[1], Z: objectAddMin[2]},
			Max: host.Point{X: objectAddMax[0], Y: objectAddMax[1], Z: objectAddMax[2]},
		}
		id, err := s.doc.AddObject(objectAddName, box)
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil
	},
}

var objectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List document objects",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"GUID", "NAME", "COLOUR"})
		for _, id := range s.doc.ObjectIDs() {
			obj, err := s.doc.Object(id)
			if err != nil {
				return err
			}
			table.Append([]string{id, obj.Name, obj.Color})
		}
		table.Render()
		return nil
	},
}

var usertextCmd = &cobra.Command{
	Use:   "usertext",
	Short: "Read and write tagged key/value data on objects",
}

var usertextSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Tag objects with a key/value pair",
	Long: `Tag the selected objects with a key/value pair. Keys are sanitized to
snake_case and values to title case before storage.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		key := format.Key(args[0])
		value := format.Value(args[1])
		for _, id := range s.targetObjects(usertextSetObjects) {
			if err := s.doc.SetValue(id, key, value); err != nil {
				return err
			}
		}
		return nil
	},
}

var usertextGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show a tagged value across objects",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		key := format.Key(args[0])
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"GUID", format.DisplayKey(key, "")})
		for _, id := range s.targetObjects(usertextGetObjects) {
			value, _, err := s.doc.Value(id, key)
			if err != nil {
				return err
			}
			table.Append([]string{id, value})
		}
		table.Render()
		return nil
	},
}

func init() {
	objectAddCmd.Flags().StringVar(&objectAddName, "name", "", "object name")
	objectAddCmd.Flags().Float64SliceVar(&objectAddMin, "min", []float64{0, 0, 0}, "bounding box minimum (x,y,z)")
	objectAddCmd.Flags().Float64SliceVar(&objectAddMax, "max", []float64{1, 1, 1}, "bounding box maximum (x,y,z)")
	objectCmd.AddCommand(objectAddCmd)
	objectCmd.AddCommand(objectListCmd)

	usertextSetCmd.Flags().StringSliceVar(&usertextSetObjects, "objects", nil, "object ids to tag (default: all)")
	usertextGetCmd.Flags().StringSliceVar(&usertextGetObjects, "objects", nil, "object ids to read (default: all)")
	usertextCmd.AddCommand(usertextSetCmd)
	usertextCmd.AddCommand(usertextGetCmd)
}
