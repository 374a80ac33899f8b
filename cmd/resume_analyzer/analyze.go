package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/extraction"
	"github.com/jonathan/resume-analyzer/internal/fetch"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/suggest"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume against a job description",
	Long: `Extract text from a PDF or DOCX resume, score it against a job description and print the
analysis as JSON. The job description comes from a JSON file (--job) or from a posting URL
(--job-url) combined with --required and --preferred skills.`,
	RunE: runAnalyze,
}

type analyzeOptions struct {
	ResumeFile string
	JobFile    string
	JobURL     string
	Required   []string
	Preferred  []string
	Browser    bool
	Verbose    bool
	Bullets    bool
	ConfigFile string
}

var analyzeOpts analyzeOptions

func init() {
	f := analyzeCmd.Flags()
	f.StringVarP(&analyzeOpts.ResumeFile, "resume", "r", "", "Path to resume file (.pdf or .docx)")
	f.StringVarP(&analyzeOpts.JobFile, "job", "j", "", "Path to job description JSON file")
	f.StringVar(&analyzeOpts.JobURL, "job-url", "", "URL of a job posting to fetch")
	f.StringSliceVar(&analyzeOpts.Required, "required", nil, "Required skills, comma separated (with --job-url)")
	f.StringSliceVar(&analyzeOpts.Preferred, "preferred", nil, "Preferred skills, comma separated (with --job-url)")
	f.BoolVar(&analyzeOpts.Browser, "browser", false, "Render the posting in headless Chrome when plain fetch returns little text")
	f.BoolVarP(&analyzeOpts.Verbose, "verbose", "v", false, "Print a detailed report to stderr")
	f.BoolVar(&analyzeOpts.Bullets, "bullets", false, "Also print resume bullet suggestions")
	f.StringVar(&analyzeOpts.ConfigFile, "config", "", "Path to JSON config file")

	_ = analyzeCmd.MarkFlagRequired("resume")
	analyzeCmd.MarkFlagsMutuallyExclusive("job", "job-url")
	analyzeCmd.MarkFlagsOneRequired("job", "job-url")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	return analyzeResume(cmd.Context(), analyzeOpts, os.Stdout, os.Stderr)
}

// analysisOutput is the JSON document printed by analyze.
type analysisOutput struct {
	*types.ResumeAnalysis
	Bullets []string `json:"bullets,omitempty"`
}

func analyzeResume(ctx context.Context, opts analyzeOptions, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(opts.ResumeFile)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}
	resumeText, err := extraction.FromFile(opts.ResumeFile, data)
	if err != nil {
		return err
	}

	jd, err := loadJobDescription(ctx, opts)
	if err != nil {
		return err
	}

	p, err := newPipeline(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer p.Close()

	res, err := p.analyzer.AnalyzeDetailed(ctx, resumeText, jd)
	if err != nil {
		return err
	}

	out := analysisOutput{ResumeAnalysis: res.Analysis}
	if opts.Bullets {
		out.Bullets = p.generator.Bullets(ctx, suggest.Request{
			JobDescription: jd,
			MissingSkills:  res.Analysis.MissingSkills,
			CurrentScore:   res.Analysis.OverallScore,
		})
	}

	if opts.Verbose {
		printer := observability.NewPrinter(stderr)
		printer.PrintResult(res)
		printer.PrintBullets(out.Bullets)
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// loadJobDescription reads the job description from --job or builds it from --job-url.
func loadJobDescription(ctx context.Context, opts analyzeOptions) (*types.JobDescription, error) {
	var in types.JobDescriptionInput

	switch {
	case opts.JobFile != "":
		raw, err := os.ReadFile(opts.JobFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read job description: %w", err)
		}
		if err := schemas.ValidateJobDescription(string(raw)); err != nil {
			return nil, fmt.Errorf("invalid job description %s: %w", opts.JobFile, err)
		}
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, fmt.Errorf("invalid job description %s: %w", opts.JobFile, err)
		}

	case opts.JobURL != "":
		postingOpts := fetch.PostingOptions{Verbose: opts.Verbose}
		if opts.Browser {
			postingOpts.Render = fetch.Headless(45 * time.Second)
		}
		text, err := fetch.JobPosting(ctx, opts.JobURL, postingOpts)
		if err != nil {
			return nil, err
		}
		in = types.JobDescriptionInput{
			Text:            text,
			RequiredSkills:  trimAll(opts.Required),
			PreferredSkills: trimAll(opts.Preferred),
		}

	default:
		return nil, fmt.Errorf("either --job or --job-url is required")
	}

	return types.NewJobDescription(in)
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
