package apigenie

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/apigenie/apigenie/internal/apitype"
	"github.com/apigenie/apigenie/internal/report"
	"github.com/apigenie/apigenie/internal/workflow"
)

var (
	flagValidatePath string
	flagIdentifyOnly bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate api.meta descriptors against the compliance rules",
		RunE:  runValidate,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagValidatePath, "path", "p", ".", "repository root")
	cmd.Flags().BoolVar(&flagIdentifyOnly, "identify-only", false, "print the API type and exit")
}

func runValidate(cmd *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagValidatePath)
	if flagIdentifyOnly {
		fmt.Println(apitype.Identify(abs))
		return nil
	}
	h, err := workflow.New(workflow.Options{
		Root:    abs,
		Config:  loadConfig(abs),
		Out:     os.Stdout,
		Log:     logger(),
		NoCache: true,
	})
	if err != nil {
		return err
	}
	res, t := h.ValidateRepo()
	if flagJSON {
		if err := report.WriteJSON(os.Stdout, nil, res); err != nil {
			return err
		}
	} else {
		fmt.Printf("API type: %s\n", t)
		report.PrintValidation(os.Stdout, res)
	}
	if !res.Passed() {
		return fmt.Errorf("%d validation error(s)", len(res.Errors))
	}
	return nil
}
