package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/coolbeans/legihtml/pkg/clml"
	"github.com/coolbeans/legihtml/pkg/ukleg"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "legihtml",
		Short: "UK legislation XML to HTML converter",
		Long: `Legihtml converts UK legislation documents from the legislation.gov.uk
XML schema (CLML) into semantic HTML fragments and structured records.

It preserves provision numbering, headings, cross-document amendments,
embedded tables and mathematical formulae, and extracts preamble and
bibliographic metadata.`,
		Version: version,
	}

	rootCmd.PersistentFlags().String("source", "", "path to a CLML XML file")
	rootCmd.PersistentFlags().String("uri", "", "legislation reference to fetch, e.g. ukpga/2018/12")
	rootCmd.PersistentFlags().String("output", "", "write output to this file instead of stdout")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")

	rootCmd.AddCommand(bodyCmd())
	rootCmd.AddCommand(schedulesCmd())
	rootCmd.AddCommand(preambleCmd())
	rootCmd.AddCommand(metadataCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadParser resolves the document from --source or --uri and wraps it in a
// parser. Exactly one of the two flags must be set.
func loadParser(cmd *cobra.Command) (*clml.Parser, *zap.Logger, error) {
	source, _ := cmd.Flags().GetString("source")
	uri, _ := cmd.Flags().GetString("uri")
	verbose, _ := cmd.Flags().GetBool("verbose")

	log := zap.NewNop()
	if verbose {
		var err error
		log, err = zap.NewDevelopment()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	var data []byte
	switch {
	case source != "" && uri != "":
		return nil, nil, fmt.Errorf("--source and --uri are mutually exclusive")
	case source != "":
		var err error
		data, err = os.ReadFile(source)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read source file: %w", err)
		}
	case uri != "":
		id, err := ukleg.ParseDocumentID(uri)
		if err != nil {
			return nil, nil, err
		}
		config := ukleg.DefaultConfig()
		config.Logger = log
		client := ukleg.NewClient(config)

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		data, err = client.FetchDocument(ctx, id)
		if err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("either --source or --uri is required")
	}

	parser, err := clml.Parse(data, clml.WithLogger(log))
	if err != nil {
		return nil, nil, err
	}
	return parser, log, nil
}

// writeOutput writes content to --output or stdout.
func writeOutput(cmd *cobra.Command, content []byte) error {
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		_, err := os.Stdout.Write(content)
		return err
	}
	if err := os.WriteFile(output, content, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func bodyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "body",
		Short: "Render the enacting text as an HTML fragment",
		Long: `Render the document's body as an HTML fragment.

Example:
  legihtml body --source act.xml
  legihtml body --uri ukpga/2018/12 --output body.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			parser, log, err := loadParser(cmd)
			if err != nil {
				return err
			}
			fragment, err := parser.Body()
			if err != nil {
				return fmt.Errorf("document structure not supported: %w", err)
			}
			if fragment == "" {
				log.Warn("document has no machine-readable body")
			}
			return writeOutput(cmd, []byte(fragment))
		},
	}
}

func schedulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedules",
		Short: "Render the schedules as an HTML fragment",
		RunE: func(cmd *cobra.Command, args []string) error {
			parser, _, err := loadParser(cmd)
			if err != nil {
				return err
			}
			fragment, err := parser.Schedules()
			if err != nil {
				return fmt.Errorf("document structure not supported: %w", err)
			}
			return writeOutput(cmd, []byte(fragment))
		},
	}
}

func preambleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preamble",
		Short: "Extract the preamble record as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			parser, _, err := loadParser(cmd)
			if err != nil {
				return err
			}
			preamble := parser.Preamble()
			if preamble == nil {
				return fmt.Errorf("document has no machine-readable root")
			}
			data, err := json.MarshalIndent(preamble, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal preamble: %w", err)
			}
			return writeOutput(cmd, append(data, '\n'))
		},
	}
}

func metadataCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metadata",
		Short: "Extract bibliographic metadata as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			parser, _, err := loadParser(cmd)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(parser.Metadata(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal metadata: %w", err)
			}
			return writeOutput(cmd, append(data, '\n'))
		},
	}
}
