package bioreport

import (
	"os"

	"github.com/arthur-debert/bioreport/pkg/config"
	"github.com/arthur-debert/bioreport/pkg/core"
	"github.com/arthur-debert/bioreport/pkg/errors"
	"github.com/arthur-debert/bioreport/pkg/scan"
	"github.com/arthur-debert/bioreport/pkg/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// loadConfig layers the global flags and extra over the configuration files
func (o *rootOptions) loadConfig(extra map[string]interface{}) (*config.Config, error) {
	overrides := make(map[string]interface{}, len(extra)+2)
	for k, v := range extra {
		overrides[k] = v
	}
	if o.rulesPath != "" {
		overrides["rules.path"] = o.rulesPath
	}
	if o.format != "" {
		overrides["output.format"] = o.format
	}
	return config.LoadFrom(".", overrides)
}

// setup loads the configuration, the engine and the output renderer
func (o *rootOptions) setup(cmd *cobra.Command, extra map[string]interface{}) (*core.Engine, ui.Renderer, ui.Format, error) {
	cfg, err := o.loadConfig(extra)
	if err != nil {
		return nil, nil, ui.FormatAuto, err
	}
	renderer, format, err := newRenderer(cmd, cfg)
	if err != nil {
		return nil, nil, format, err
	}
	engine, err := core.New(cfg)
	if err != nil {
		return nil, nil, format, err
	}
	return engine, renderer, format, nil
}

// newRenderer resolves the configured format for the command's output
func newRenderer(cmd *cobra.Command, cfg *config.Config) (ui.Renderer, ui.Format, error) {
	format, err := ui.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, format, err
	}
	out := cmd.OutOrStdout()
	if format == ui.FormatAuto {
		if f, ok := out.(*os.File); ok {
			format = ui.DetectFormat(f)
		} else {
			format = ui.FormatText
		}
	}
	renderer, err := ui.NewRenderer(format, out)
	return renderer, format, err
}

// failedFiles returns an error when any file failed, nil otherwise
func failedFiles(failed, total int) error {
	if failed == 0 {
		return nil
	}
	return errors.Newf(errors.ErrPartialFailure, MsgErrFailedFiles, failed, total).
		WithDetail("failed", failed).
		WithDetail("total", total)
}

// progressBar shows scan progress on an interactive stderr. The returned
// stop function must be called once the scan is over.
func progressBar(format ui.Format) (func(done, total int), func()) {
	if format != ui.FormatTerminal || !ui.IsTerminal(os.Stderr) {
		return nil, func() {}
	}

	var bar *pterm.ProgressbarPrinter
	update := func(done, total int) {
		if bar == nil {
			started, err := pterm.DefaultProgressbar.
				WithTotal(total).
				WithTitle(MsgScanning).
				WithWriter(os.Stderr).
				WithRemoveWhenDone(true).
				Start()
			if err != nil {
				return
			}
			bar = started
		}
		bar.Increment()
	}
	stop := func() {
		if bar != nil {
			_, _ = bar.Stop()
		}
	}
	return update, stop
}

// scanFailures counts the files a scan could not classify
func scanFailures(res *scan.Result) int {
	if res == nil {
		return 0
	}
	return len(res.Failures)
}
