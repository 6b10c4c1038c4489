package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rhyton-cad/rhyton"
	"github.com/rhyton-cad/rhyton/internal/export"
)

var (
	exportFormat       string
	exportOut          string
	exportKeys         []string
	exportObjects      []string
	exportAppend       bool
	exportIncludeColor bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tagged object data to CSV or JSON",
	Long: `Export the user text of the selected objects to a file. The CSV header is
the sorted union of all keys across the selection. With --include-color each
object's current display colour is added under a temporary "color" tag for
the duration of the export.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		ids := s.targetObjects(exportObjects)

		var rows []map[string]string
		collect := func() error {
			var err error
			rows, err = export.Collect(s.doc, ids, exportKeys)
			return err
		}

		if exportIncludeColor {
			tags := make(map[string]map[string]string, len(ids))
			for _, id := range ids {
				hex, err := s.doc.Color(id)
				if err != nil {
					return err
				}
				if hex != "" {
					tags[id] = map[string]string{rhyton.ColorKey: hex}
				}
			}
			err = export.WithTemporaryValues(s.doc, tags, collect)
		} else {
			err = collect()
		}
		if err != nil {
			return err
		}

		var sum export.Summary
		switch exportFormat {
		case "csv":
			if exportAppend {
				sum, err = export.AppendCSV(rows, exportOut)
			} else {
				sum, err = export.CSV(rows, exportOut)
			}
		case "json":
			if exportAppend {
				sum, err = export.AppendJSON(rows, exportOut)
			} else {
				sum, err = export.JSON(rows, exportOut)
			}
		default:
			return fmt.Errorf("unknown export format %q (want csv or json)", exportFormat)
		}
		if err != nil {
			return err
		}

		fmt.Println(sum)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "export format (csv, json)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default: timestamped file in the working directory)")
	exportCmd.Flags().StringSliceVar(&exportKeys, "keys", nil, "user text keys to export (default: all)")
	exportCmd.Flags().StringSliceVar(&exportObjects, "objects", nil, "object ids to export (default: all)")
	exportCmd.Flags().BoolVar(&exportAppend, "append", false, "append to an existing export file")
	exportCmd.Flags().BoolVar(&exportIncludeColor, "include-color", false, "include each object's display colour")
}
