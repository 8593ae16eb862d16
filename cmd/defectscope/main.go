package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/defectscope/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	prefsPath := flag.String("prefs", "", "override prefs path (optional)")
	once := flag.String("once", "", "analyze this image without the TUI and print the result")
	download := flag.Bool("download", false, "with -once, save the report and processed image into download_dir")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		Once:       *once,
		Download:   *download,
	}
	if opts.Once == "" && flag.NArg() > 0 {
		fmt.Fprintln(os.Stderr, "defectscope: unexpected arguments; use -once <image> for a headless run")
		return 2
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "defectscope: %v\n", err)
		return 1
	}
	return 0
}
