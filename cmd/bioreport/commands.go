package bioreport

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arthur-debert/bioreport/internal/version"
	"github.com/arthur-debert/bioreport/pkg/config"
	"github.com/arthur-debert/bioreport/pkg/core"
	"github.com/arthur-debert/bioreport/pkg/dispatcher"
	"github.com/arthur-debert/bioreport/pkg/errors"
	"github.com/arthur-debert/bioreport/pkg/logging"
	"github.com/arthur-debert/bioreport/pkg/report"
	"github.com/arthur-debert/bioreport/pkg/rules"
	"github.com/arthur-debert/bioreport/pkg/scan"
	"github.com/arthur-debert/bioreport/pkg/summary"
	"github.com/arthur-debert/bioreport/pkg/ui"
	"github.com/arthur-debert/bioreport/pkg/ui/display"
	"github.com/arthur-debert/bioreport/pkg/watch"
	"github.com/spf13/cobra"
)

// scanFlags are the scan settings a command can override
type scanFlags struct {
	workers  int
	failFast bool
	hidden   bool
}

func (f *scanFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, MsgFlagWorkers)
	cmd.Flags().BoolVar(&f.failFast, "fail-fast", false, MsgFlagFailFast)
	cmd.Flags().BoolVar(&f.hidden, "hidden", false, MsgFlagHidden)
}

// overrides returns the config keys of the flags set on the command line
func (f *scanFlags) overrides(cmd *cobra.Command, extra map[string]interface{}) map[string]interface{} {
	if cmd.Flags().Changed("workers") {
		extra["scan.workers"] = f.workers
	}
	if cmd.Flags().Changed("fail-fast") {
		extra["scan.fail_fast"] = f.failFast
	}
	if cmd.Flags().Changed("hidden") {
		extra["scan.skip_hidden"] = !f.hidden
	}
	return extra
}

func newScanCmd(opts *rootOptions) *cobra.Command {
	var (
		flags scanFlags
		parse bool
		join  string
	)

	cmd := &cobra.Command{
		Use:     "scan <dir>",
		Short:   MsgScanShort,
		Long:    MsgScanLong,
		Example: MsgScanExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			extra := flags.overrides(cmd, map[string]interface{}{})
			if cmd.Flags().Changed("join") {
				extra["output.join"] = join
			}
			engine, renderer, format, err := opts.setup(cmd, extra)
			if err != nil {
				return err
			}

			progress, stop := progressBar(format)
			res, scanErr := engine.Scan(cmd.Context(), args[0], progress)
			stop()
			if res == nil {
				return scanErr
			}

			if parse {
				parsed := engine.ParseReports(res.Reports, dispatcher.ParseOptions{})
				if err := renderParsed(engine, renderer, parsed, res.Failures, len(res.Reports)+len(res.Failures)); err != nil {
					return err
				}
				return scanErr
			}

			if err := renderer.RenderScan(display.FromScan(res)); err != nil {
				return err
			}
			if scanErr != nil {
				return scanErr
			}
			return failedFiles(scanFailures(res), res.Total)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&parse, "parse", "p", false, MsgFlagParse)
	cmd.Flags().StringVar(&join, "join", "", MsgFlagJoin)
	return cmd
}

func newClassifyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "classify <file>...",
		Short:   MsgClassifyShort,
		Long:    MsgClassifyLong,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, renderer, _, err := opts.setup(cmd, nil)
			if err != nil {
				return err
			}

			reports, failures := engine.ClassifyFiles(args)
			if err := renderer.RenderReports(display.FromReports(reports, failures)); err != nil {
				return err
			}
			return failedFiles(len(failures), len(args))
		},
	}
}

func newParseCmd(opts *rootOptions) *cobra.Command {
	var (
		flags   scanFlags
		name    string
		refresh bool
		join    string
	)

	cmd := &cobra.Command{
		Use:     "parse <file or dir>...",
		Short:   MsgParseShort,
		Long:    MsgParseLong,
		Example: MsgParseExample,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.parse")

			extra := flags.overrides(cmd, map[string]interface{}{})
			if cmd.Flags().Changed("join") {
				extra["output.join"] = join
			}
			engine, renderer, format, err := opts.setup(cmd, extra)
			if err != nil {
				return err
			}
			if name != "" {
				if err := dispatcher.ValidateName(name); err != nil {
					return err
				}
			}

			var (
				files    []string
				scanned  []report.Report
				failures []scan.Failure
			)
			for _, arg := range args {
				info, err := os.Stat(arg)
				if err != nil || !info.IsDir() {
					files = append(files, arg)
					continue
				}
				progress, stop := progressBar(format)
				res, err := engine.Scan(cmd.Context(), arg, progress)
				stop()
				if res == nil {
					return err
				}
				scanned = append(scanned, res.Reports...)
				failures = append(failures, res.Failures...)
				if err != nil {
					return err
				}
			}

			parseOpts := dispatcher.ParseOptions{Refresh: refresh}
			if len(args) == 1 && len(files) == 1 {
				parseOpts.Name = name
			} else if name != "" {
				logger.Warn().Str("name", name).Msg("--name ignored for several files")
			}

			parsed := engine.ParseFiles(files, parseOpts)
			fromScan := engine.ParseReports(scanned, dispatcher.ParseOptions{Refresh: refresh})
			parsed.Summaries = append(parsed.Summaries, fromScan.Summaries...)
			parsed.Failures = append(parsed.Failures, fromScan.Failures...)

			total := len(files) + len(scanned) + len(failures)
			return renderParsed(engine, renderer, parsed, failures, total)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&name, "name", "n", "", MsgFlagName)
	cmd.Flags().BoolVar(&refresh, "refresh", false, MsgFlagRefresh)
	cmd.Flags().StringVar(&join, "join", "", MsgFlagJoin)
	return cmd
}

// renderParsed aggregates the summaries into module tables and renders them
// with every failure, earlier first
func renderParsed(engine *core.Engine, renderer ui.Renderer, parsed *core.ParseResult, earlier []scan.Failure, total int) error {
	join, err := summary.ParseJoin(engine.Config.Output.Join)
	if err != nil {
		return err
	}
	tables, err := core.Aggregate(parsed.Summaries, join)
	if err != nil {
		return err
	}

	failures := append(append([]scan.Failure{}, earlier...), parsed.Failures...)
	if err := renderer.RenderParse(display.FromTables(tables, failures)); err != nil {
		return err
	}
	return failedFiles(len(failures), total)
}

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var (
		flags    scanFlags
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:     "watch <dir>",
		Short:   MsgWatchShort,
		Long:    MsgWatchLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			extra := flags.overrides(cmd, map[string]interface{}{})
			cfg, err := opts.loadConfig(extra)
			if err != nil {
				return err
			}
			renderer, _, err := newRenderer(cmd, cfg)
			if err != nil {
				return err
			}

			load := func() (*core.Engine, error) {
				fresh, err := opts.loadConfig(extra)
				if err != nil {
					return nil, err
				}
				return core.New(fresh)
			}
			w, err := watch.New(watch.Config{
				Root:       args[0],
				RulesPath:  cfg.Rules.Path,
				Debounce:   debounce,
				SkipHidden: cfg.Scan.SkipHidden,
			}, load)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := renderer.RenderMessage(fmt.Sprintf(MsgWatchingRoot, args[0])); err != nil {
				return err
			}
			return w.Watch(ctx, func(ev watch.Event) {
				if ev.Err != nil {
					_ = renderer.RenderError(ev.Err)
				}
				if len(ev.Stale) > 0 || len(ev.StaleFailures) > 0 {
					_ = renderer.RenderMessage(fmt.Sprintf(MsgStaleFormat, len(ev.Stale), len(ev.StaleFailures)))
					_ = renderer.RenderReports(display.FromReports(ev.Stale, ev.StaleFailures))
				}
				if ev.Result != nil {
					_ = renderer.RenderScan(display.FromScan(ev.Result))
				}
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, MsgFlagDebounce)
	return cmd
}

func newRulesCmd(opts *rootOptions) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:     "rules",
		Short:   MsgRulesShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, renderer, _, err := opts.setup(cmd, nil)
			if err != nil {
				return err
			}
			if dump {
				data, err := rules.Marshal(engine.Rules)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return renderer.RenderRules(display.FromRules(engine.Rules))
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, MsgFlagDump)
	return cmd
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if defaults {
				_, err := fmt.Fprint(out, config.GenerateConfigContent())
				return err
			}

			cfg, err := opts.loadConfig(nil)
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			default:
				return errors.Newf(errors.ErrInvalidInput, "unsupported shell: %s", args[0])
			}
		},
	}
}
