package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"framekey/internal/engine"
	"framekey/internal/fingerprint"
	"framekey/internal/logging"
	"framekey/internal/notify"
	"framekey/internal/records"
)

var videoFileExtensions = map[string]struct{}{
	".mkv": {},
	".mp4": {},
	".avi": {},
	".mov": {},
}

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check <path>",
		Short: "Run a video file through the duplicate gate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}

			info, err := os.Stat(absPath)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("file does not exist: %s", absPath)
				}
				return fmt.Errorf("inspect file: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("%s is a directory", absPath)
			}

			ext := strings.ToLower(filepath.Ext(info.Name()))
			if _, ok := videoFileExtensions[ext]; !ok {
				return fmt.Errorf("unsupported file extension %q", ext)
			}

			stdout := cmd.OutOrStdout()

			// Prefer the daemon so its lock serializes submissions;
			// fall back to a direct run when it is not up.
			if client, dialErr := ctx.dialClient(); dialErr == nil {
				defer client.Close()
				resp, err := client.Submit(absPath)
				if err != nil {
					return err
				}
				printSubmitResult(stdout, resp.Outcome, resp.Reason, resp.MatchedFilename, filepath.Base(absPath))
				return nil
			}

			outcome, err := submitDirect(cmd, ctx, absPath)
			if err != nil {
				return err
			}
			reason := ""
			matched := ""
			if outcome.Status == engine.Rejected {
				reason = outcome.Reason.String()
				matched = outcome.Match.Filename
			}
			printSubmitResult(stdout, outcome.Status.String(), reason, matched, filepath.Base(absPath))
			return nil
		},
	}
}

func submitDirect(cmd *cobra.Command, ctx *commandContext, path string) (engine.Outcome, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return engine.Outcome{}, err
	}

	logger, err := logging.New(logging.Options{
		Level:  "warn",
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return engine.Outcome{}, fmt.Errorf("init logger: %w", err)
	}

	store := records.NewStore(cfg.Paths.RecordFile)
	extractor := fingerprint.NewExtractor(fingerprint.Options{
		Grid:          cfg.Fingerprint.Grid,
		VideoWidth:    cfg.Fingerprint.VideoWidth,
		VideoHeight:   cfg.Fingerprint.VideoHeight,
		FFmpegBinary:  cfg.FFmpegBinary(),
		DecodeTimeout: time.Duration(cfg.Fingerprint.DecodeTimeout) * time.Second,
	})

	eng, err := engine.New(store, extractor, notify.NewService(cfg), logger)
	if err != nil {
		return engine.Outcome{}, fmt.Errorf("create engine: %w", err)
	}
	return eng.Submit(cmd.Context(), path)
}

func printSubmitResult(stdout io.Writer, outcome, reason, matched, filename string) {
	switch outcome {
	case "accepted":
		fmt.Fprintf(stdout, "Accepted %s\n", filename)
	case "rejected":
		if matched != "" {
			fmt.Fprintf(stdout, "Rejected %s: %s (matches %s)\n", filename, reason, matched)
		} else {
			fmt.Fprintf(stdout, "Rejected %s: %s\n", filename, reason)
		}
	default:
		fmt.Fprintf(stdout, "Could not fingerprint %s; nothing was recorded\n", filename)
	}
}
