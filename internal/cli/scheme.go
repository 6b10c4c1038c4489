package cli

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/rhyton-cad/rhyton/internal/export"
)

var schemeCmd = &cobra.Command{
	Use:   "scheme",
	Short: "Manage the colour schemes stored in the document",
}

var schemeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored colour schemes",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		names, err := s.vis.Schemes().Names()
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"SCHEME", "KEYS"})
		for _, name := range names {
			scheme, _, err := s.vis.Schemes().Load(name)
			if err != nil {
				return err
			}
			table.Append([]string{name, strconv.Itoa(len(scheme))})
		}
		table.Render()
		return nil
	},
}

var schemeShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the key/colour assignments of a scheme",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		scheme, found, err := s.vis.Schemes().Load(args[0])
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no scheme named %q", args[0])
		}

		keys := make([]string, 0, len(scheme))
		for key := range scheme {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"KEY", "COLOUR"})
		for _, key := range keys {
			table.Append([]string{key, scheme[key]})
		}
		table.Render()
		return nil
	},
}

var schemeDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a colour scheme from the document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		return s.vis.Schemes().Delete(args[0])
	},
}

var schemeExportCmd = &cobra.Command{
	Use:   "export <name> <file>",
	Short: "Write a scheme to a standalone JSON file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		scheme, found, err := s.vis.Schemes().Load(args[0])
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no scheme named %q", args[0])
		}

		path, err := export.SchemeToJSON(scheme, args[1])
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var schemeImportCmd = &cobra.Command{
	Use:   "import <name> <file>",
	Short: "Merge a scheme from a standalone JSON file into the document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		scheme, err := export.SchemeFromJSON(args[1])
		if err != nil {
			return err
		}
		return s.vis.Schemes().Save(args[0], scheme)
	},
}

func init() {
	schemeCmd.AddCommand(schemeListCmd)
	schemeCmd.AddCommand(schemeShowCmd)
	schemeCmd.AddCommand(schemeDeleteCmd)
	schemeCmd.AddCommand(schemeExportCmd)
	schemeCmd.AddCommand(schemeImportCmd)
}
