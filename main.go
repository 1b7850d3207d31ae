package main

import (
	cmdaggregate "mv2-creator/command/aggregate"
	cmdconvert "mv2-creator/command/convert"
	cmdweb "mv2-creator/command/web"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// MV2 creator: turns an MV1 time-tracking workbook into the aggregated MV2 report.
// Usage:
//   go run . convert -in MV1.xlsx [-out ./reports] [-csv]
// Notes:
// - Settings come from the YAML file named by CONFIG_PATH (default ./config.yml); a .env file is loaded first.
// - LOG_LEVEL selects debug, info, warn or error.

func main() {
	_ = godotenv.Load()

	args := os.Args
	// Initialize slog logger (text to stderr)
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(os.Getenv("LOG_LEVEL"))})
	slog.SetDefault(slog.New(h))

	if len(args) > 1 {
		sub := args[1]
		rest := append([]string{}, args[2:]...)
		var run func([]string) error
		switch sub {
		case "convert":
			run = cmdconvert.Run
		case "aggregate":
			run = cmdaggregate.Run
		case "web":
			run = cmdweb.Run
		}
		if run != nil {
			if err := run(rest); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		}
	}
	fmt.Fprintln(os.Stderr, "usage: mv2 convert -in <mv1.xlsx> [-out <dir>] [-csv] | aggregate -in <mv1.xlsx> [-data ./data] | web [-addr :8080] [-ui ./ui/dist]\nENV: set CONFIG_PATH to point to a YAML config file (default ./config.yml), LOG_LEVEL to debug|info|warn|error")
	os.Exit(2)
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
