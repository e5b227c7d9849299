package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/AlessioNar/op-cellar/pkg/akn"
	"github.com/AlessioNar/op-cellar/pkg/cellar"
	"github.com/AlessioNar/op-cellar/pkg/elihtml"
	"github.com/AlessioNar/op-cellar/pkg/formex"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "op-cellar",
		Short: "EU legal document extractor",
		Long: `op-cellar extracts structured content from EU legal documents.

It parses the renditions served by the Publications Office Cellar
repository and turns them into JSON records:
  - Akoma Ntoso XML (metadata, preface, preamble, chapters, articles)
  - Formex XML (bibliographic data, preamble, enacting terms)
  - ELI XHTML (article and paragraph text)

It can also fetch documents from Cellar directly, by id or from
SPARQL query results.`,
		Version: version,
	}

	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(formexCmd())
	rootCmd.AddCommand(htmlCmd())
	rootCmd.AddCommand(fetchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// aknRecord is the combined JSON output of the extract command.
type aknRecord struct {
	Identification *akn.Identification `json:"identification,omitempty"`
	References     *akn.Reference      `json:"references,omitempty"`
	Proprietary    *akn.Proprietary    `json:"proprietary,omitempty"`
	Preface        []string            `json:"preface,omitempty"`
	Preamble       *akn.Preamble       `json:"preamble,omitempty"`
	Chapters       []akn.Chapter       `json:"chapters,omitempty"`
	Articles       []akn.Article       `json:"articles,omitempty"`
}

func extractCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Extract structured content from an Akoma Ntoso document",
		Long: `Extract metadata, preface, preamble, chapters and articles from an
Akoma Ntoso XML document and write them as a JSON record.

Example:
  op-cellar extract directive.akn.xml
  op-cellar extract directive.akn.xml --output directive.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := akn.Load(args[0])
			if err != nil {
				return err
			}

			record := aknRecord{
				References: doc.References(),
				Preface:    doc.Preface(),
				Chapters:   doc.Chapters(),
				Articles:   doc.Articles(),
			}
			if record.Identification, err = doc.Identification(); err != nil {
				return fmt.Errorf("failed to extract identification: %w", err)
			}
			if record.Proprietary, err = doc.Proprietary(); err != nil {
				return fmt.Errorf("failed to extract proprietary metadata: %w", err)
			}
			if record.Preamble, err = doc.Preamble(); err != nil {
				return fmt.Errorf("failed to extract preamble: %w", err)
			}

			return writeJSON(record, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON to file instead of stdout")
	return cmd
}

// formexRecord is the combined JSON output of the formex command.
type formexRecord struct {
	Metadata *formex.Metadata `json:"metadata,omitempty"`
	Title    string           `json:"title,omitempty"`
	Preamble *formex.Preamble `json:"preamble,omitempty"`
	Articles []formex.Article `json:"articles,omitempty"`
}

func formexCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "formex [file]",
		Short: "Extract structured content from a Formex document",
		Long: `Extract bibliographic metadata, title, preamble and articles from a
Formex XML document and write them as a JSON record.

Example:
  op-cellar formex L_2014257EN.01021401.xml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := formex.Load(args[0])
			if err != nil {
				return err
			}

			record := formexRecord{
				Metadata: doc.Metadata(),
				Title:    doc.Title(),
				Articles: doc.Articles(),
			}
			if record.Preamble, err = doc.Preamble(); err != nil {
				return fmt.Errorf("failed to extract preamble: %w", err)
			}

			return writeJSON(record, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON to file instead of stdout")
	return cmd
}

// htmlRecord is the combined JSON output of the html command.
type htmlRecord struct {
	Articles   map[string]string `json:"articles,omitempty"`
	Paragraphs map[string]string `json:"paragraphs,omitempty"`
}

func htmlCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "html [file]",
		Short: "Extract article text from an ELI XHTML document",
		Long: `Extract article and paragraph text from an XHTML rendition using ELI
subdivision markup and write it as a JSON record.

Example:
  op-cellar html directive.xhtml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := elihtml.Load(args[0])
			if err != nil {
				return err
			}

			record := htmlRecord{Articles: doc.Articles()}
			if record.Paragraphs, err = doc.Paragraphs(); err != nil {
				return fmt.Errorf("failed to extract paragraphs: %w", err)
			}

			return writeJSON(record, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON to file instead of stdout")
	return cmd
}

func fetchCmd() *cobra.Command {
	var (
		resultsPath string
		rawIDs      string
		dir         string
		format      string
		configPath  string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download documents from the Cellar repository",
		Long: `Download documents from the Publications Office Cellar repository.

Ids come either from a SPARQL JSON results file (--results, filtered
by --format) or directly from --ids. Zip payloads are extracted into
per-id directories; other payloads are written as single files.

Example:
  op-cellar fetch --ids aaa-111,bbb-222 --dir ./downloads --format fmx4
  op-cellar fetch --results query.json --format xhtml --dir ./downloads`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var ids []string
			switch {
			case resultsPath != "":
				data, err := os.ReadFile(resultsPath)
				if err != nil {
					return fmt.Errorf("failed to read results %s: %w", resultsPath, err)
				}
				if ids, err = cellar.IDsFromResults(data, format); err != nil {
					return err
				}
			case rawIDs != "":
				for _, id := range strings.Split(rawIDs, ",") {
					if id = strings.TrimSpace(id); id != "" {
						ids = append(ids, id)
					}
				}
			default:
				return fmt.Errorf("either --results or --ids is required")
			}
			if len(ids) == 0 {
				return fmt.Errorf("no cellar ids to fetch")
			}

			config := cellar.DefaultConfig()
			if configPath != "" {
				var err error
				if config, err = cellar.LoadConfig(configPath); err != nil {
					return err
				}
			}

			client := cellar.NewClient(config)
			report, err := client.Download(context.Background(), ids, dir, format)
			if err != nil {
				return err
			}

			fmt.Printf("Downloaded %d document(s): %d extracted from zip, %d single file(s)\n",
				report.ZipFiles+report.SingleFiles, report.ZipFiles, report.SingleFiles)
			if len(report.Failed) > 0 {
				fmt.Printf("Failed: %s\n", strings.Join(report.Failed, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&resultsPath, "results", "", "SPARQL JSON results file to take ids from")
	cmd.Flags().StringVar(&rawIDs, "ids", "", "comma-separated cellar ids")
	cmd.Flags().StringVar(&dir, "dir", "./downloads", "directory to write documents to")
	cmd.Flags().StringVar(&format, "format", "fmx4", "format binding to filter results by, and file extension")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML config file for the cellar client")
	return cmd
}

func writeJSON(record any, output string) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	if output == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	fmt.Printf("Wrote %s\n", output)
	return nil
}
