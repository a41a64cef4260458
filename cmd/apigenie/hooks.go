package apigenie

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/apigenie/apigenie/internal/workflow"
)

var flagHookPath string

func init() {
	precommit := &cobra.Command{
		Use:   "precommit",
		Short: "Run the pre-commit secret scan",
		RunE:  runPreCommit,
	}
	prepush := &cobra.Command{
		Use:   "prepush [local-ref local-sha remote-ref remote-sha]",
		Short: "Run the pre-push secret scan and compliance validation",
		Long: "Intended to be called from .git/hooks/pre-push. Ref arguments " +
			"may be passed on the command line or piped on stdin in the " +
			"format git hands to the hook.",
		RunE: runPrePush,
	}
	rootCmd.AddCommand(precommit, prepush)
	precommit.Flags().StringVarP(&flagHookPath, "path", "p", ".", "repository root")
	prepush.Flags().StringVarP(&flagHookPath, "path", "p", ".", "repository root")
}

func newHook(interactive bool) (*workflow.Hook, error) {
	opts := workflow.Options{
		Root:    flagHookPath,
		Config:  loadConfig(flagHookPath),
		Out:     os.Stdout,
		Log:     logger(),
		NoCache: flagNoCache,
	}
	if interactive {
		opts.Prompter = &consolePrompter{in: os.Stdin, out: os.Stderr}
	}
	return workflow.New(opts)
}

func runPreCommit(cmd *cobra.Command, _ []string) error {
	h, err := newHook(false)
	if err != nil {
		return err
	}
	return exitCode(h.PreCommit())
}

func runPrePush(cmd *cobra.Command, args []string) error {
	h, err := newHook(true)
	if err != nil {
		return err
	}
	localSHA, remoteSHA := pushRange(args)
	return exitCode(h.PrePush(localSHA, remoteSHA))
}

// pushRange extracts local/remote SHAs from hook args or, failing
// that, from the "<local-ref> <local-sha> <remote-ref> <remote-sha>"
// lines git writes to the hook's stdin.
func pushRange(args []string) (local, remote string) {
	if len(args) >= 4 {
		return args[1], args[3]
	}
	stat, err := os.Stdin.Stat()
	if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
		return "", ""
	}
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 4 {
			return fields[1], fields[3]
		}
	}
	return "", ""
}

// exitCode maps hook outcomes onto process exit codes: policy blocks
// and user aborts exit 1 without the usage noise of a cobra error.
func exitCode(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, workflow.ErrBlocked) || errors.Is(err, workflow.ErrAborted) {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	return err
}
