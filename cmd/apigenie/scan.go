package apigenie

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/apigenie/apigenie/internal/report"
	"github.com/apigenie/apigenie/internal/types"
	"github.com/apigenie/apigenie/internal/workflow"
)

var (
	flagScanPath     string
	flagScanRepo     bool
	flagScanStaged   bool
	flagChangedLines bool
	flagHTMLOut      string
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan [files...]",
		Short: "Scan files for secrets",
		Long:  "Scan the whole repository, the staged set, explicit files, or only the changed lines of the working diff.",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagScanPath, "path", "p", ".", "repository root")
	cmd.Flags().BoolVar(&flagScanRepo, "repo", false, "scan every tracked file")
	cmd.Flags().BoolVar(&flagScanStaged, "staged", false, "scan staged files")
	cmd.Flags().BoolVar(&flagChangedLines, "changed-lines", false, "scan only added lines of the working diff")
	cmd.Flags().StringVar(&flagHTMLOut, "html", "", "also write an HTML report to this path")
}

func runScan(cmd *cobra.Command, args []string) error {
	abs, _ := filepath.Abs(flagScanPath)
	h, err := workflow.New(workflow.Options{
		Root:    abs,
		Config:  loadConfig(abs),
		Out:     os.Stdout,
		Log:     logger(),
		NoCache: flagNoCache,
	})
	if err != nil {
		return err
	}

	sc := h.Scanner()
	var findings []types.Finding
	switch {
	case flagScanRepo:
		findings = sc.ScanRepository()
	case flagChangedLines:
		files := args
		if len(files) == 0 {
			files, _ = h.Runner().StagedFiles()
		}
		findings = sc.ScanChangedLines(files)
	case flagScanStaged || len(args) == 0:
		findings = sc.ScanFilesToPush(args)
	default:
		findings = sc.ScanFiles(args)
	}

	if flagHTMLOut != "" {
		f, err := os.Create(flagHTMLOut)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := report.WriteHTML(f, h.Runner().RepoMetadata(), findings); err != nil {
			return err
		}
	}

	if flagJSON {
		if err := report.WriteJSON(os.Stdout, findings, nil); err != nil {
			return err
		}
	} else {
		report.PrintFindings(os.Stdout, findings)
	}
	if len(findings) > 0 {
		return fmt.Errorf("%d potential secret(s) found", len(findings))
	}
	return nil
}
