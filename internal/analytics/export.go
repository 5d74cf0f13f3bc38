package analytics

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
)

// Export compiles the views, writes both reports under the configured
// reports directory, and logs a preview of the leading rows.
func (s *Service) Export(ctx context.Context) error {
	if err := s.CompileViews(ctx); err != nil {
		return err
	}

	topContent, err := s.TopContent(ctx)
	if err != nil {
		return err
	}
	engagement, err := s.CustomerEngagement(ctx)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.cfg.ReportsDir, 0o755); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}
	if err := s.writeTopContent(topContent); err != nil {
		return err
	}
	if err := s.writeEngagement(engagement); err != nil {
		return err
	}

	s.logPreview(topContent, engagement)
	return nil
}

func (s *Service) writeTopContent(rows []TopContent) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, []string{
		"content_id", "title", "genre", "total_watch_hours", "unique_viewers", "avg_completion_rate",
	})
	for _, r := range rows {
		records = append(records, []string{
			strconv.FormatInt(r.ContentID, 10),
			r.Title,
			r.Genre,
			strconv.FormatFloat(r.TotalWatchHours, 'f', 2, 64),
			strconv.FormatInt(r.UniqueViewers, 10),
			strconv.FormatFloat(r.AvgCompletionRate, 'f', 4, 64),
		})
	}
	return s.writeCSV("top_content.csv", records)
}

func (s *Service) writeEngagement(rows []CustomerEngagement) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, []string{
		"customer_id", "name", "avg_watch_minutes_per_session", "avg_completion_rate", "total_sessions",
	})
	for _, r := range rows {
		records = append(records, []string{
			strconv.FormatInt(r.CustomerID, 10),
			r.Name,
			strconv.FormatFloat(r.AvgWatchMinutesPerSession, 'f', 2, 64),
			strconv.FormatFloat(r.AvgCompletionRate, 'f', 4, 64),
			strconv.FormatInt(r.TotalSessions, 10),
		})
	}
	return s.writeCSV("engagement_metrics.csv", records)
}

func (s *Service) writeCSV(name string, records [][]string) error {
	path := filepath.Join(s.cfg.ReportsDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	s.log.Info("report written", zap.String("path", path), zap.Int("rows", len(records)-1))
	return nil
}

func (s *Service) logPreview(topContent []TopContent, engagement []CustomerEngagement) {
	for i, r := range topContent {
		if i >= 5 {
			break
		}
		s.log.Info("top content",
			zap.Int("rank", i+1),
			zap.Int64("content_id", r.ContentID),
			zap.String("title", r.Title),
			zap.String("genre", r.Genre),
			zap.Float64("total_watch_hours", r.TotalWatchHours),
			zap.Int64("unique_viewers", r.UniqueViewers),
		)
	}
	for i, r := range engagement {
		if i >= 5 {
			break
		}
		s.log.Info("engaged customer",
			zap.Int("rank", i+1),
			zap.Int64("customer_id", r.CustomerID),
			zap.Float64("avg_watch_minutes", r.AvgWatchMinutesPerSession),
			zap.Int64("total_sessions", r.TotalSessions),
		)
	}
}
