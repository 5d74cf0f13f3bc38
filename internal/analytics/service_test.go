package analytics

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/streamhaven/dataforge/internal/config"
	contentdomain "github.com/streamhaven/dataforge/internal/content/domain"
	customerdomain "github.com/streamhaven/dataforge/internal/customer/domain"
	"github.com/streamhaven/dataforge/internal/migration"
	usagedomain "github.com/streamhaven/dataforge/internal/usage/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var anchor = time.Date(2026, 3, 18, 15, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger:         gormlogger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migration.RunMigrations(sqlDB, "sqlite"))

	cfg := config.Config{ReportsDir: t.TempDir()}
	return New(Params{Cfg: cfg, DB: conn, Log: zap.NewNop()}), conn
}

// seedWarehouse loads two customers and two titles. The first title gathers
// far more watch time; the third customer never watches anything.
func seedWarehouse(t *testing.T, conn *gorm.DB) {
	t.Helper()
	require.NoError(t, conn.Create([]customerdomain.Customer{
		{ID: 1, Name: "Ada Mercer", Email: "ada.mercer.1@example.com", SignupDate: anchor.AddDate(0, 0, -100), DeviceType: "mobile", Country: "Canada"},
		{ID: 2, Name: "Ben Okafor", Email: "ben.okafor.2@example.com", SignupDate: anchor.AddDate(0, 0, -90), DeviceType: "desktop", Country: "India"},
		{ID: 3, Name: "Cleo Tan", Email: "cleo.tan.3@example.com", SignupDate: anchor.AddDate(0, 0, -80), DeviceType: "tablet", Country: "Australia"},
	}).Error)
	require.NoError(t, conn.Create([]contentdomain.Content{
		{ID: 1, Title: "Quiet Harbor", Genre: "movie", DurationMinutes: 120},
		{ID: 2, Title: "Night Drive", Genre: "music", DurationMinutes: 5},
	}).Error)
	require.NoError(t, conn.Create([]usagedomain.UsageLog{
		{ID: 1, CustomerID: 1, ContentID: 1, Timestamp: anchor.AddDate(0, 0, -5), DurationWatched: 120, CompletionRate: 1.0},
		{ID: 2, CustomerID: 2, ContentID: 1, Timestamp: anchor.AddDate(0, 0, -4), DurationWatched: 60, CompletionRate: 0.5},
		{ID: 3, CustomerID: 1, ContentID: 2, Timestamp: anchor.AddDate(0, 0, -3), DurationWatched: 5, CompletionRate: 1.0},
	}).Error)
}

func TestTopContentOrdering(t *testing.T) {
	svc, conn := newService(t)
	seedWarehouse(t, conn)
	require.NoError(t, svc.CompileViews(context.Background()))

	rows, err := svc.TopContent(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, int64(1), rows[0].ContentID)
	assert.InDelta(t, 3.0, rows[0].TotalWatchHours, 0.001)
	assert.EqualValues(t, 2, rows[0].UniqueViewers)
	assert.InDelta(t, 0.75, rows[0].AvgCompletionRate, 0.001)

	assert.Equal(t, int64(2), rows[1].ContentID)
	assert.Greater(t, rows[0].TotalWatchHours, rows[1].TotalWatchHours)
}

func TestCustomerEngagementExcludesIdleCustomers(t *testing.T) {
	svc, conn := newService(t)
	seedWarehouse(t, conn)
	require.NoError(t, svc.CompileViews(context.Background()))

	rows, err := svc.CustomerEngagement(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2, "idle customers must not appear")

	assert.Equal(t, int64(1), rows[0].CustomerID)
	assert.EqualValues(t, 2, rows[0].TotalSessions)
	assert.InDelta(t, 62.5, rows[0].AvgWatchMinutesPerSession, 0.001)
	assert.InDelta(t, 1.0, rows[0].AvgCompletionRate, 0.001)
}

func TestCompileViewsIsRepeatable(t *testing.T) {
	svc, conn := newService(t)
	seedWarehouse(t, conn)

	require.NoError(t, svc.CompileViews(context.Background()))
	require.NoError(t, svc.CompileViews(context.Background()))
}

func TestExportWritesReports(t *testing.T) {
	svc, conn := newService(t)
	seedWarehouse(t, conn)

	require.NoError(t, svc.Export(context.Background()))

	top := readCSV(t, filepath.Join(svc.cfg.ReportsDir, "top_content.csv"))
	require.Len(t, top, 3)
	assert.Equal(t, []string{"content_id", "title", "genre", "total_watch_hours", "unique_viewers", "avg_completion_rate"}, top[0])
	assert.Equal(t, "1", top[1][0])

	engagement := readCSV(t, filepath.Join(svc.cfg.ReportsDir, "engagement_metrics.csv"))
	require.Len(t, engagement, 3)
	assert.Equal(t, "1", engagement[1][0])
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}
