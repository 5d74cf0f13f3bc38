// Package analytics compiles the aggregation views over the loaded
// warehouse and exports their contents as CSV reports.
package analytics

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/streamhaven/dataforge/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed views/*.sql
var embeddedViews embed.FS

var viewFiles = []string{
	"views/top_content_view.sql",
	"views/engagement_metrics_view.sql",
}

// TopContent is one row of the content performance view.
type TopContent struct {
	ContentID         int64
	Title             string
	Genre             string
	TotalWatchHours   float64
	UniqueViewers     int64
	AvgCompletionRate float64
}

// CustomerEngagement is one row of the customer engagement view. Customers
// without sessions do not appear; the view joins on usage.
type CustomerEngagement struct {
	CustomerID                int64
	Name                      string
	AvgWatchMinutesPerSession float64
	AvgCompletionRate         float64
	TotalSessions             int64
}

type Params struct {
	fx.In

	Cfg config.Config
	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	cfg config.Config
	db  *gorm.DB
	log *zap.Logger
}

func New(p Params) *Service {
	return &Service{
		cfg: p.Cfg,
		db:  p.DB,
		log: p.Log.Named("analytics"),
	}
}

// CompileViews drops and recreates the aggregation views from the embedded
// definitions.
func (s *Service) CompileViews(ctx context.Context) error {
	for _, file := range viewFiles {
		raw, err := embeddedViews.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read view %s: %w", file, err)
		}
		for _, stmt := range strings.Split(string(raw), ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if err := s.db.WithContext(ctx).Exec(stmt).Error; err != nil {
				return fmt.Errorf("compile view %s: %w", file, err)
			}
		}
		s.log.Info("view compiled", zap.String("view", file))
	}
	return nil
}

// TopContent returns the content performance rows, busiest titles first.
func (s *Service) TopContent(ctx context.Context) ([]TopContent, error) {
	var rows []TopContent
	err := s.db.WithContext(ctx).
		Raw("SELECT * FROM top_content_view ORDER BY total_watch_hours DESC, unique_viewers DESC, content_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query top_content_view: %w", err)
	}
	return rows, nil
}

// CustomerEngagement returns the engagement rows, most active customers
// first.
func (s *Service) CustomerEngagement(ctx context.Context) ([]CustomerEngagement, error) {
	var rows []CustomerEngagement
	err := s.db.WithContext(ctx).
		Raw("SELECT * FROM engagement_metrics_view ORDER BY total_sessions DESC, customer_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query engagement_metrics_view: %w", err)
	}
	return rows, nil
}
