package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"MarketAnalyzer/internal/model"
)

const (
	priceScript = "fetch_prices.py"
	yieldScript = "fetch_dividend_yield.py"

	// DefaultTimeout bounds a single fetcher invocation. The external
	// process downloads several months of data, so this is generous but
	// still releases the in-flight guard on a hung script.
	DefaultTimeout = 60 * time.Second
)

// ScriptFetcher invokes the external Python fetch scripts and validates
// their JSON output. Success is exit status 0 with a full payload on
// stdout; on failure stderr is surfaced verbatim as the error message.
type ScriptFetcher struct {
	PythonBin  string
	ScriptsDir string
	Timeout    time.Duration
}

// NewScriptFetcher creates a fetcher running scripts from scriptsDir with
// the given interpreter. A zero timeout falls back to DefaultTimeout.
func NewScriptFetcher(pythonBin, scriptsDir string, timeout time.Duration) *ScriptFetcher {
	if pythonBin == "" {
		pythonBin = "python3"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ScriptFetcher{
		PythonBin:  pythonBin,
		ScriptsDir: scriptsDir,
		Timeout:    timeout,
	}
}

func (f *ScriptFetcher) Name() string { return "script" }

func (f *ScriptFetcher) FetchPrices(ctx context.Context, symbols []string, period, interval string) (*model.PricePayload, error) {
	out, err := f.run(ctx, priceScript,
		"--tickers="+strings.Join(symbols, ","),
		"--period="+period,
		"--interval="+interval,
	)
	if err != nil {
		return nil, err
	}
	return DecodePricePayload(out)
}

func (f *ScriptFetcher) FetchYield(ctx context.Context, period, source string) (*model.YieldPayload, error) {
	out, err := f.run(ctx, yieldScript,
		"--period="+period,
		"--source="+source,
	)
	if err != nil {
		return nil, err
	}
	return DecodeYieldPayload(out)
}

// run executes one script invocation under the configured deadline.
// Whatever accumulated on stdout before a non-zero exit or timeout is
// discarded; only a clean run's output is returned.
func (f *ScriptFetcher) run(ctx context.Context, script string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()

	cmdArgs := append([]string{filepath.Join(f.ScriptsDir, script)}, args...)
	cmd := exec.CommandContext(ctx, f.PythonBin, cmdArgs...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if ctx.Err() == context.DeadlineExceeded {
		log.Printf("[WARN] %s timed out after %s", script, elapsed.Round(time.Millisecond))
		return nil, fmt.Errorf("%s timed out after %s", script, f.Timeout)
	}
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%s failed: %s", script, msg)
	}

	log.Printf("[INFO] %s completed in %s", script, elapsed.Round(time.Millisecond))
	return stdout.Bytes(), nil
}
