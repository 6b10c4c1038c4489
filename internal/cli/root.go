// Package cli provides the command-line interface for rhyton.
package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/rhyton-cad/rhyton"
	"github.com/rhyton-cad/rhyton/internal/document"
	"github.com/rhyton-cad/rhyton/internal/version"
	"github.com/rhyton-cad/rhyton/internal/visualize"
)

var (
	// Global flags
	documentPath  string
	extensionName string
	verbose       bool

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "rhyton",
		Short: "Data tagging and colour visualization for CAD documents",
		Long: `Rhyton tags CAD objects with key/value data and visualizes it: named
colour schemes assign stable, distinct colours to categorical values,
gradients map numeric ranges, and tagged data exports to CSV or JSON.

Without a running host application it operates on a JSON sidecar document.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&documentPath, "document", "d", "model.rhyton.json", "path to the document file")
	rootCmd.PersistentFlags().StringVar(&extensionName, "extension", rhyton.DefaultExtension, "extension namespace for document storage")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(visualizeCmd)
	rootCmd.AddCommand(gradientCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(schemeCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(objectCmd)
	rootCmd.AddCommand(usertextCmd)
}

// newLogger builds the session logger honouring --verbose.
func newLogger() hclog.Logger {
	level := hclog.Warn
	if verbose {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "rhyton",
		Level:  level,
		Output: os.Stderr,
	})
}

// session is the shared state every command works against.
type session struct {
	doc *document.Document
	cfg rhyton.Config
	log hclog.Logger
	vis *visualize.Visualizer
}

// openSession opens the document and loads (or initialises) the extension
// settings stored in it.
func openSession() (*session, error) {
	log := newLogger()

	doc, err := document.Open(documentPath, log)
	if err != nil {
		return nil, err
	}

	cfg, err := rhyton.LoadConfig(doc, extensionName)
	if err != nil {
		return nil, err
	}

	return &session{
		doc: doc,
		cfg: cfg,
		log: log,
		vis: visualize.New(doc, cfg, log),
	}, nil
}

// targetObjects resolves the --objects selection, defaulting to every model
// object in the document.
func (s *session) targetObjects(ids []string) []string {
	if len(ids) > 0 {
		return ids
	}
	return s.doc.ObjectIDs()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}
