package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/roman-kulish/bandplan-vswr/internal/bandplan"
	"github.com/roman-kulish/bandplan-vswr/internal/scan"
	"github.com/roman-kulish/bandplan-vswr/internal/storage"
)

func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	reader := scan.NewReader(
		scan.WithLogger(logger),
		scan.WithReferenceImpedance(config.Render.ReferenceImpedance),
	)

	scans, err := reader.ReadDir(config.ScanDirectory)
	if err != nil {
		return fmt.Errorf("reading scans: %w", err)
	}

	plan := bandplan.Canada()
	logScans(logger, plan, scans)

	if config.Archive.Path != "" {
		if scans, err = archiveScans(ctx, config.Archive, scans, logger); err != nil {
			return fmt.Errorf("archiving scans: %w", err)
		}
	}

	if err = ctx.Err(); err != nil {
		return err
	}

	palette := NewPalette(config.Render.Theme)
	chart := NewChart(plan, scans, ChartConfig{
		Title:           config.Render.Title,
		VSWRMax:         config.Render.VSWRMax,
		OverviewVSWRMax: config.Render.OverviewVSWRMax,
		Palette:         palette,
	})

	renderer, err := NewChartRenderer(RenderConfig{
		Width:   config.Render.Width,
		Palette: palette,
	})
	if err != nil {
		return fmt.Errorf("creating chart renderer: %w", err)
	}

	logger.Info("rendering chart",
		slog.Group("image",
			slog.String("destination", config.OutputFile),
			slog.String("format", string(config.Format)),
			slog.String("theme", string(config.Render.Theme)),
			slog.Int("width", config.Render.Width),
			slog.Int("panels", len(chart.Panels)),
			slog.Int("curves", len(chart.Legend)),
		))

	img, err := renderer.Render(chart)
	if err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}

	if err = writeImage(config.OutputFile, img, config.Format); err != nil {
		return err
	}

	logger.Info("chart written", slog.String("destination", config.OutputFile))
	return nil
}

func logScans(logger *slog.Logger, plan bandplan.Plan, scans []*scan.Scan) {
	for _, s := range scans {
		stats := scan.Summarize(s, scan.DefaultBandwidthThreshold)

		attrs := []any{
			slog.String("name", s.Name),
			slog.Int("samples", stats.Samples),
			slog.String("minFreq", humanHz(stats.FrequencyMin)),
			slog.String("maxFreq", humanHz(stats.FrequencyMax)),
			slog.String("minVSWR", fmt.Sprintf("%0.2f", stats.MinVSWR)),
			slog.String("bestFreq", humanHz(stats.MinVSWRFrequency)),
			slog.String("band", string(plan.ByFrequency(stats.MinVSWRFrequency).Name)),
		}
		if stats.Bandwidth() > 0 {
			attrs = append(attrs, slog.String("bandwidth", humanHz(stats.Bandwidth())))
		}

		logger.Info("scan loaded", slog.Group("stats", attrs...))
	}
}

// archiveScans stores the scans in the archive. With replay enabled the
// latest archived scan of every name missing from scans is appended.
func archiveScans(ctx context.Context, config ArchiveConfig, scans []*scan.Scan, logger *slog.Logger) (_ []*scan.Scan, err error) {
	store := storage.NewSqliteStore(config.Path, storage.WithMaxBatchSize(config.MaxBatchSize))
	defer func() {
		if cErr := store.Close(); cErr != nil {
			err = errors.Join(err, fmt.Errorf("closing archive: %w", cErr))
		}
	}()

	names := make(map[string]struct{}, len(scans))
	for _, s := range scans {
		id, err := store.StoreScan(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("storing %s: %w", s.Name, err)
		}
		names[s.Name] = struct{}{}

		logger.Debug("scan archived", slog.String("name", s.Name), slog.Int64("id", id))
	}

	if !config.Replay {
		return scans, nil
	}

	if _, err = os.Stat(config.Path); err != nil && os.IsNotExist(err) {
		logger.Info("scan archive is empty, nothing to replay", slog.String("path", config.Path))
		return scans, nil
	}

	records, err := store.Scans(ctx)
	if err != nil {
		return nil, err
	}

	replayed := scans
	for _, rec := range records {
		if _, ok := names[rec.Name]; ok {
			continue
		}

		s, err := store.ReadScan(ctx, rec.ID)
		if err != nil {
			return nil, err
		}
		s.Name = fmt.Sprintf("%s (%s)", rec.Name, rec.ArchivedAt.Local().Format(time.DateOnly))
		replayed = append(replayed, s)

		logger.Info("archived scan replayed",
			slog.String("name", rec.Name),
			slog.Int("samples", rec.NumSamples),
			slog.String("archivedAt", rec.ArchivedAt.Local().Format(time.DateTime)))
	}

	return replayed, nil
}
