package workflow

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/apigenie/apigenie/internal/apitype"
	"github.com/apigenie/apigenie/internal/audit"
	"github.com/apigenie/apigenie/internal/cache"
	"github.com/apigenie/apigenie/internal/config"
	"github.com/apigenie/apigenie/internal/files"
	"github.com/apigenie/apigenie/internal/git"
	"github.com/apigenie/apigenie/internal/meta"
	"github.com/apigenie/apigenie/internal/report"
	"github.com/apigenie/apigenie/internal/scan"
	"github.com/apigenie/apigenie/internal/types"
	"github.com/apigenie/apigenie/internal/validate"
)

// ErrBlocked is returned when a hook rejects the commit or push.
var ErrBlocked = errors.New("blocked by policy")

// ErrAborted is returned when the user cancels at the prompt.
var ErrAborted = errors.New("aborted by user")

// minJustificationWords is the floor for an override justification.
const minJustificationWords = 10

// Prompter is the decision boundary between the hook core and
// whatever surface presents failures to the user. The core never
// renders prompts itself.
type Prompter interface {
	PresentValidationFailure(res *validate.Result) (types.Decision, string)
}

// blockAlways is the Prompter used when no interactive surface exists.
type blockAlways struct{}

func (blockAlways) PresentValidationFailure(*validate.Result) (types.Decision, string) {
	return types.DecisionBlock, ""
}

// Options configure a hook run.
type Options struct {
	Root     string
	Config   config.FileConfig
	Prompter Prompter
	Out      io.Writer
	Log      zerolog.Logger
	NoCache  bool
}

// Hook wires the scanner, validator and git together for one
// repository.
type Hook struct {
	root     string
	runner   *git.Runner
	scanner  *scan.Scanner
	db       *cache.DB
	prompter Prompter
	out      io.Writer
	log      zerolog.Logger
	auditLog *audit.Log
	cfg      config.FileConfig
}

// New builds a hook for the repository at opts.Root.
func New(opts Options) (*Hook, error) {
	runner, err := git.NewRunner(opts.Root)
	if err != nil {
		return nil, err
	}
	h := &Hook{
		root:     runner.Root(),
		runner:   runner,
		prompter: opts.Prompter,
		out:      opts.Out,
		log:      opts.Log,
		auditLog: audit.NewLog(runner.Root()),
		cfg:      opts.Config,
	}
	if h.prompter == nil {
		h.prompter = blockAlways{}
	}
	if h.out == nil {
		h.out = io.Discard
	}

	scanOpts := []scan.Option{
		scan.WithLogger(opts.Log),
		scan.WithExclusions(exclusionsFrom(opts.Config)),
	}
	noCache := opts.NoCache || (opts.Config.NoCache != nil && *opts.Config.NoCache)
	if !noCache {
		h.db, _ = cache.Load(h.root)
		scanOpts = append(scanOpts, scan.WithCache(h.db))
	}
	h.scanner = scan.New(h.root, runner, thresholdsFrom(opts.Config), scanOpts...)
	return h, nil
}

// Scanner exposes the underlying scanner for direct scan commands.
func (h *Hook) Scanner() *scan.Scanner { return h.scanner }

// Runner exposes the git runner.
func (h *Hook) Runner() *git.Runner { return h.runner }

// PreCommit scans the staged changes for secrets. Findings block: the
// commit never gets an override path, secrets must come out.
func (h *Hook) PreCommit() error {
	staged, err := h.runner.StagedFiles()
	if err != nil {
		return fmt.Errorf("listing staged files: %w", err)
	}
	if len(staged) == 0 {
		return nil
	}

	var findings []types.Finding
	if h.cfg.ChangedLinesOnly != nil && *h.cfg.ChangedLinesOnly {
		findings = h.scanner.ScanChangedLines(staged)
	} else {
		findings = h.scanner.ScanFiles(staged)
	}
	h.saveCache()

	if len(findings) > 0 {
		h.record("pre-commit", findings, nil, "")
		report.PrintFindings(h.out, findings)
		return fmt.Errorf("%d potential secret(s) staged: %w", len(findings), ErrBlocked)
	}

	// A staged descriptor gets validated right away, so a broken
	// api.meta never reaches the pre-push prompt in the first place.
	if stagedMeta(staged) {
		res, t := h.ValidateRepo()
		h.record("pre-commit", nil, res, "")
		if t.RequiresValidation() && !res.Passed() {
			report.PrintValidation(h.out, res)
			return fmt.Errorf("%d validation error(s) in staged descriptors: %w", len(res.Errors), ErrBlocked)
		}
		return nil
	}
	h.record("pre-commit", nil, nil, "")
	return nil
}

func stagedMeta(paths []string) bool {
	for _, p := range paths {
		if meta.IsMetaFile(filepath.Base(p)) {
			return true
		}
	}
	return false
}

// PrePush scans outgoing files for secrets and, for repository types
// under governance, validates every api.meta descriptor. Validation
// failures go through the prompter; an override amends the commit
// message and leaves a local record.
func (h *Hook) PrePush(localRef, remoteRef string) error {
	toPush, err := h.runner.FilesToPush(localRef, remoteRef)
	if err != nil {
		h.log.Warn().Err(err).Msg("could not resolve push range")
	}
	findings := h.scanner.ScanFilesToPush(toPush)
	h.saveCache()
	if len(findings) > 0 {
		report.PrintFindings(h.out, findings)
		h.record("pre-push", findings, nil, "")
		return fmt.Errorf("%d potential secret(s) in push: %w", len(findings), ErrBlocked)
	}

	res, t := h.ValidateRepo()
	if t == apitype.TypeGeneral || t == apitype.TypeUnknown {
		h.record("pre-push", nil, res, "")
		return nil
	}
	if res.Passed() {
		h.record("pre-push", nil, res, "")
		return nil
	}

	report.PrintValidation(h.out, res)
	decision, justification := h.prompter.PresentValidationFailure(res)
	h.record("pre-push", nil, res, decision.String())
	switch decision {
	case types.DecisionOverride:
		if words(justification) < minJustificationWords {
			return fmt.Errorf("justification must be at least %d words: %w", minJustificationWords, ErrBlocked)
		}
		return h.applyOverride(res, justification)
	case types.DecisionAbort:
		return ErrAborted
	default:
		return fmt.Errorf("%d validation error(s): %w", len(res.Errors), ErrBlocked)
	}
}

// ValidateRepo classifies the repo and runs compliance over every
// descriptor found. Governed repo types must carry at least one.
func (h *Hook) ValidateRepo() (*validate.Result, apitype.Type) {
	t := apitype.Identify(h.root)
	h.log.Info().Str("api_type", string(t)).Msg("repository classified")
	res := &validate.Result{}
	if !t.RequiresValidation() {
		return res, t
	}
	found := meta.Find(h.root, h.log)
	if len(found) == 0 {
		res.AddError(fmt.Sprintf("API type %s requires at least one api.meta file", t), "")
		return res, t
	}
	for _, mf := range found {
		res.Merge(validate.Descriptor(mf.Data, mf.Path))
	}
	return res, t
}

// applyOverride records the override locally and stamps the commit
// message with the notice appendix.
func (h *Hook) applyOverride(res *validate.Result, justification string) error {
	commit, err := h.runner.LastCommitHash()
	if err != nil {
		return fmt.Errorf("resolving HEAD: %w", err)
	}
	name, err := audit.SaveOverrideDetails(h.root, commit, justification, res.Errors, res.Warnings)
	if err != nil {
		return err
	}
	for _, pattern := range files.LocalArtifactIgnores() {
		_ = files.AppendIgnore(h.root, pattern)
	}
	msg, err := h.runner.LastCommitMessage()
	if err != nil {
		return fmt.Errorf("reading commit message: %w", err)
	}
	notice := audit.OverrideNotice(justification, len(res.Errors), len(res.Warnings))
	if err := h.runner.AmendCommitMessage(msg + "\n" + notice); err != nil {
		return fmt.Errorf("amending commit message: %w", err)
	}
	fmt.Fprintf(h.out, "Override recorded in %s\n", name)
	h.log.Info().Str("details", name).Msg("validation override applied")
	return nil
}

func (h *Hook) record(hook string, findings []types.Finding, res *validate.Result, decision string) {
	md := h.runner.RepoMetadata()
	rec := audit.Record{
		Timestamp:   time.Now(),
		Hook:        hook,
		Root:        h.root,
		Branch:      md.Branch,
		Commit:      md.Commit,
		APIType:     string(apitype.Identify(h.root)),
		Findings:    len(findings),
		Decision:    decision,
		AllFindings: findings,
	}
	if res != nil {
		rec.Errors = res.Errors
		rec.Warnings = res.Warnings
	}
	if err := h.auditLog.Append(rec); err != nil {
		h.log.Debug().Err(err).Msg("audit append failed")
	}
}

func (h *Hook) saveCache() {
	if h.db != nil {
		if err := cache.Save(h.root, h.db); err != nil {
			h.log.Debug().Err(err).Msg("cache save failed")
		}
	}
}

func words(s string) int {
	return len(strings.Fields(s))
}

func thresholdsFrom(cfg config.FileConfig) scan.Thresholds {
	t := scan.DefaultThresholds()
	if cfg.Profile != nil && strings.EqualFold(*cfg.Profile, "lenient") {
		t = scan.LenientThresholds()
	}
	if cfg.Thresholds != nil {
		if cfg.Thresholds.Default != nil {
			t.Default = *cfg.Thresholds.Default
		}
		if cfg.Thresholds.Password != nil {
			t.Password = *cfg.Thresholds.Password
		}
		if cfg.Thresholds.PasswordMinLength != nil {
			t.PasswordMinLength = *cfg.Thresholds.PasswordMinLength
		}
	}
	return t
}

func exclusionsFrom(cfg config.FileConfig) *scan.Exclusions {
	if cfg.Exclusions == nil {
		return scan.DefaultExclusions()
	}
	return scan.NewExclusions(
		cfg.Exclusions.AdditionalExclusions,
		cfg.Exclusions.FileExtensions,
		cfg.Exclusions.Directories,
	)
}
