package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shelterconnect/shelter-matcher/internal/config"
	"github.com/shelterconnect/shelter-matcher/pkg/core/matcher"
	"github.com/shelterconnect/shelter-matcher/pkg/core/model"
	"github.com/shelterconnect/shelter-matcher/pkg/core/normalize"
	"github.com/shelterconnect/shelter-matcher/pkg/db"
)

// EmailBody is the text sent alongside the match file
const EmailBody = "Your potential shelter matches are attached to this email."

// ErrNoRecipients is returned when a run should email the match file but no recipients are configured
var ErrNoRecipients = errors.New("no email recipients configured")

// Exporter renders a match set as file bytes
type Exporter interface {
	Export(set *matcher.MatchSet) ([]byte, error)
	Extension() string
	ContentType() string
}

// Notifier delivers the match file
type Notifier interface {
	SendAttachment(ctx context.Context, to []string, subject, body, filename string, data []byte) error
}

// MatchOptions controls the side effects of a run
type MatchOptions struct {
	DryRun  bool // skip writing the file and sending email
	NoEmail bool

	// Date stamps the output filename; the current date is used when zero
	Date time.Time

	// Diagnostics receives the per-pair explanation when nothing matched; nil disables it
	Diagnostics io.Writer
}

// MatchResult is the outcome of a matching run
type MatchResult struct {
	RunID       string
	Set         *matcher.MatchSet
	Filename    string
	ContentType string
	Data        []byte
	Path        string // empty when the file was not written
	Emailed     bool

	ReferralCount int
	ShelterCount  int
	BedCount      int
}

// Inputs are the normalized collections a run matches over
type Inputs struct {
	Referrals   []model.Referral
	Shelters    []model.Shelter
	Beds        matcher.BedsByShelter
	RawShelters []model.Record
}

// LoadInputs fetches referrals, shelters and bed availability in parallel and normalizes them
func LoadInputs(ctx context.Context, source db.RecordSource, logger *zap.Logger) (*Inputs, error) {
	var rawReferrals, rawShelters, rawBeds []model.Record

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if rawReferrals, err = source.GetReferrals(gctx); err != nil {
			return fmt.Errorf("failed to fetch referrals: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if rawShelters, err = source.GetShelters(gctx); err != nil {
			return fmt.Errorf("failed to fetch shelters: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if rawBeds, err = source.GetBedAvailability(gctx); err != nil {
			return fmt.Errorf("failed to fetch bed availability: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug("Fetched source records",
		zap.Int("referrals", len(rawReferrals)),
		zap.Int("shelters", len(rawShelters)),
		zap.Int("bed_rows", len(rawBeds)))

	inputs := &Inputs{
		Referrals:   normalize.Referrals(rawReferrals),
		Shelters:    normalize.Shelters(rawShelters),
		Beds:        normalize.LatestBedsByShelter(rawBeds),
		RawShelters: rawShelters,
	}

	logger.Debug("Normalized inputs", zap.Int("shelters_with_beds", len(inputs.Beds)))

	return inputs, nil
}

// RunMatching runs the full pipeline: fetch, normalize, match, export, then
// write the file to the output directory and email it unless options say otherwise.
func RunMatching(
	ctx context.Context,
	source db.RecordSource,
	exporter Exporter,
	notifier Notifier,
	cfg *config.Config,
	logger *zap.Logger,
	opts MatchOptions,
) (*MatchResult, error) {
	sendEmail := !opts.DryRun && !opts.NoEmail
	if sendEmail && len(cfg.EmailRecipients) == 0 {
		return nil, ErrNoRecipients
	}

	runID := uuid.New().String()
	logger = logger.With(zap.String("run_id", runID))
	logger.Info("Starting matching run", zap.Bool("dry_run", opts.DryRun), zap.Bool("email", sendEmail))

	inputs, err := LoadInputs(ctx, source, logger)
	if err != nil {
		return nil, err
	}

	set := matcher.BuildMatches(inputs.Referrals, inputs.Shelters, inputs.Beds)
	logger.Info("Built matches",
		zap.Int("referrals", len(inputs.Referrals)),
		zap.Int("shelters", len(inputs.Shelters)),
		zap.Int("matches", len(set.Rows)))

	if set.Empty() && opts.Diagnostics != nil {
		if err := matcher.PrintNoMatchDiagnostics(opts.Diagnostics, inputs.Referrals, inputs.Shelters, inputs.Beds); err != nil {
			logger.Warn("Failed to write diagnostics", zap.Error(err))
		}
	}

	data, err := exporter.Export(set)
	if err != nil {
		return nil, fmt.Errorf("failed to export matches: %w", err)
	}

	date := opts.Date
	if date.IsZero() {
		date = time.Now()
	}

	result := &MatchResult{
		RunID:         runID,
		Set:           set,
		Filename:      MatchFilename(date, set.Empty(), exporter.Extension()),
		ContentType:   exporter.ContentType(),
		Data:          data,
		ReferralCount: len(inputs.Referrals),
		ShelterCount:  len(inputs.Shelters),
		BedCount:      len(inputs.Beds),
	}

	if opts.DryRun {
		logger.Info("Dry run, skipping file output and email", zap.String("filename", result.Filename))
		return result, nil
	}

	result.Path, err = writeOutput(cfg.OutputDir, result.Filename, data)
	if err != nil {
		return nil, err
	}
	logger.Info("Wrote match file", zap.String("path", result.Path), zap.Int("bytes", len(data)))

	if sendEmail {
		if err := notifier.SendAttachment(ctx, cfg.EmailRecipients, cfg.EmailSubject, EmailBody, result.Filename, data); err != nil {
			return nil, fmt.Errorf("failed to email matches: %w", err)
		}
		result.Emailed = true
		logger.Info("Emailed match file", zap.Strings("recipients", cfg.EmailRecipients))
	}

	return result, nil
}

// MatchFilename names the output file for a run on date, marking runs with no matches
func MatchFilename(date time.Time, empty bool, ext string) string {
	name := "shelter_matches_exact_" + date.Format("2006-01-02")
	if empty {
		name += "_EMPTY"
	}
	return name + "." + ext
}

func writeOutput(dir, filename string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write match file: %w", err)
	}

	return path, nil
}
