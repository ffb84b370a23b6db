package main

// Analyze a resume from the command line:
//   go run ./cmd/analyze quality resume.pdf
//   go run ./cmd/analyze jd resume.docx --jd posting.txt --role "Backend Engineer"
//   go run ./cmd/analyze jd resume.pdf --jd-url https://example.com/jobs/42
//   go run ./cmd/analyze score resume.txt --jd posting.txt --json

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"resume-analysis/internal/analyses"
	"resume-analysis/internal/analyses/textnorm"
	"resume-analysis/internal/bootstrap"
	"resume-analysis/internal/extract"
	"resume-analysis/internal/jobdesc"
	"resume-analysis/internal/shared/config"
	"resume-analysis/internal/shared/telemetry"
)

type options struct {
	jsonOut bool
	jdFile  string
	jdURL   string
	role    string
}

func init() {
	_ = godotenv.Load()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "analyze",
		Short:        "Score resumes for quality and job description fit",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Logs go to stderr so --json output stays parseable.
			level, err := logrus.ParseLevel(config.Load().LogLevel)
			if err != nil {
				level = logrus.WarnLevel
			}
			telemetry.SetOutput(cmd.ErrOrStderr(), level)
		},
	}
	rootCmd.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "print the raw JSON result")

	qualityCmd := &cobra.Command{
		Use:   "quality <resume-file>",
		Short: "Run the general quality analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuality(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	jdCmd := &cobra.Command{
		Use:   "jd <resume-file>",
		Short: "Match a resume against a job description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJD(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}
	jdCmd.Flags().StringVarP(&opts.jdFile, "jd", "j", "", "path to the job description")
	jdCmd.Flags().StringVarP(&opts.jdURL, "jd-url", "u", "", "URL of the job posting")
	jdCmd.Flags().StringVarP(&opts.role, "role", "r", analyses.DefaultJobRole, "target job role")

	scoreCmd := &cobra.Command{
		Use:   "score <resume-file>",
		Short: "Compute the quick ATS score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}
	scoreCmd.Flags().StringVarP(&opts.jdFile, "jd", "j", "", "path to the job description")
	scoreCmd.Flags().StringVarP(&opts.jdURL, "jd-url", "u", "", "URL of the job posting")

	rootCmd.AddCommand(qualityCmd, jdCmd, scoreCmd)
	return rootCmd
}

func buildEngine(ctx context.Context) (bootstrap.EngineDeps, error) {
	return bootstrap.BuildEngine(ctx, config.Load())
}

func runQuality(ctx context.Context, w io.Writer, path string, opts *options) error {
	text, err := readResume(ctx, path)
	if err != nil {
		return err
	}
	deps, err := buildEngine(ctx)
	if err != nil {
		return err
	}
	defer deps.Close()

	result, _, err := deps.Engine.RunQuality(ctx, text)
	if err != nil {
		return err
	}
	if opts.jsonOut {
		return writeJSON(w, result)
	}
	printQuality(w, result)
	return nil
}

func runJD(ctx context.Context, w io.Writer, path string, opts *options) error {
	text, err := readResume(ctx, path)
	if err != nil {
		return err
	}
	jd, err := readJobDescription(ctx, opts)
	if err != nil {
		return err
	}
	deps, err := buildEngine(ctx)
	if err != nil {
		return err
	}
	defer deps.Close()

	role := strings.TrimSpace(opts.role)
	if role == "" {
		role = analyses.DefaultJobRole
	}
	result, _, err := deps.Engine.RunJDMatch(ctx, text, jd, role)
	if err != nil {
		return err
	}
	if opts.jsonOut {
		return writeJSON(w, result)
	}
	printJDMatch(w, role, result)
	return nil
}

func runScore(ctx context.Context, w io.Writer, path string, opts *options) error {
	text, err := readResume(ctx, path)
	if err != nil {
		return err
	}
	jd, err := readJobDescription(ctx, opts)
	if err != nil {
		return err
	}
	deps, err := buildEngine(ctx)
	if err != nil {
		return err
	}
	defer deps.Close()

	result := deps.Engine.Score(text, jd)
	if opts.jsonOut {
		return writeJSON(w, result)
	}
	printScore(w, result)
	return nil
}

func readResume(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read resume: %w", err)
	}
	raw, err := extract.Text(ctx, data, "", path)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", path, err)
	}
	text := textnorm.Normalize(raw)
	if text == "" {
		return "", fmt.Errorf("extract %s: %w", path, extract.ErrNoText)
	}
	return text, nil
}

func readJobDescription(ctx context.Context, opts *options) (string, error) {
	var raw string
	switch {
	case opts.jdFile != "" && opts.jdURL != "":
		return "", errors.New("use either --jd or --jd-url, not both")
	case opts.jdFile != "":
		data, err := os.ReadFile(opts.jdFile)
		if err != nil {
			return "", fmt.Errorf("read job description: %w", err)
		}
		raw = string(data)
	case opts.jdURL != "":
		posting, err := jobdesc.Fetch(ctx, nil, opts.jdURL)
		if err != nil {
			return "", fmt.Errorf("fetch job description: %w", err)
		}
		if opts.role == "" || opts.role == analyses.DefaultJobRole {
			if title := strings.TrimSpace(posting.Title); title != "" {
				opts.role = title
			}
		}
		raw = posting.Description
	default:
		return "", errors.New("a job description is required: pass --jd or --jd-url")
	}

	jd := jobdesc.Clean(raw)
	if jd == "" {
		return "", jobdesc.ErrEmpty
	}
	return jd, nil
}
