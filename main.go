package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	flags "github.com/jessevdk/go-flags"

	"apc-panel/internal/config"
	"apc-panel/internal/ui/gui"
	"apc-panel/internal/ui/headless"
)

var BuildVersion = "dev"

func main() {
	rootCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	opts, err := config.ParseOptions(nil)
	if err != nil {
		var flagErr *flags.Error
		if errors.As(err, &flagErr) && flagErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if saved, loadErr := config.LoadSettings(); loadErr == nil {
		opts = config.MergeOptionsWithSettings(opts, saved)
	}
	if err := config.ValidateRequired(opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	lock, lockedByOther, lockErr := acquireInstanceLock(instanceKey(opts))
	if lockErr != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize single-instance lock:", lockErr)
		os.Exit(2)
	}
	if lockedByOther {
		if !gui.Available() || opts.Headless {
			fmt.Fprintln(os.Stderr, "A panel for this APC is already open.")
		} else {
			hideAndDetachConsoleForGUI()
			showAlreadyRunningDialog()
		}
		os.Exit(1)
	}

	runErr := run(rootCtx, opts)
	_ = lock.Release()
	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		os.Exit(1)
	}
}

func run(rootCtx context.Context, opts config.Options) error {
	// Headless-tag builds always run headless; runtime UI selection is ignored.
	if !gui.Available() || opts.Headless {
		return headless.Run(rootCtx, BuildVersion, opts)
	}
	hideAndDetachConsoleForGUI()
	return gui.Run(rootCtx, BuildVersion, opts)
}

// instanceKey names the single-instance lock: one panel per APC, or per
// snapshot file when running offline.
func instanceKey(opts config.Options) string {
	ref := strings.TrimSpace(opts.APC)
	if opts.OfflineMode() {
		ref = "file-" + strings.TrimSpace(opts.SnapshotFile)
	}
	var b strings.Builder
	for _, r := range strings.ToLower(ref) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "default"
	}
	return b.String()
}
