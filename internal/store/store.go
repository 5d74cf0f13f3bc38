// Package store loads a validated bundle into the relational warehouse.
// Tables load in dependency order after a full wipe, and rows the
// validation report rejected are excluded. The database constraints stay
// on as the second line of defense behind the validation gate.
package store

import (
	"context"
	"fmt"

	"github.com/streamhaven/dataforge/internal/dataset"
	validationdomain "github.com/streamhaven/dataforge/internal/validation/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const batchSize = 500

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(p Params) *Store {
	return &Store{
		db:  p.DB,
		log: p.Log.Named("store"),
	}
}

// Load wipes the warehouse and inserts the accepted rows of every table in
// dependency order. It returns the loaded row count per table.
func (s *Store) Load(ctx context.Context, b *dataset.Bundle, rep *validationdomain.Report) (map[string]int, error) {
	if err := s.wipe(ctx); err != nil {
		return nil, err
	}

	counts := make(map[string]int, 5)

	customers, err := decodeCustomers(b.Customers, rejectedIn(rep, "customers"))
	if err != nil {
		return nil, err
	}
	if err := insert(ctx, s.db, "customers", customers, counts); err != nil {
		return nil, err
	}

	plans, err := decodePlans(b.Plans, rejectedIn(rep, "plans"))
	if err != nil {
		return nil, err
	}
	if err := insert(ctx, s.db, "plans", plans, counts); err != nil {
		return nil, err
	}

	content, err := decodeContent(b.Content, rejectedIn(rep, "content"))
	if err != nil {
		return nil, err
	}
	if err := insert(ctx, s.db, "content", content, counts); err != nil {
		return nil, err
	}

	subs, err := decodeSubscriptions(b.Subscriptions, rejectedIn(rep, "subscriptions"))
	if err != nil {
		return nil, err
	}
	if err := insert(ctx, s.db, "subscriptions", subs, counts); err != nil {
		return nil, err
	}

	logs, err := decodeUsageLogs(b.UsageLogs, rejectedIn(rep, "usage_logs"))
	if err != nil {
		return nil, err
	}
	if err := insert(ctx, s.db, "usage_logs", logs, counts); err != nil {
		return nil, err
	}

	for _, table := range []string{"customers", "plans", "content", "subscriptions", "usage_logs"} {
		s.log.Info("table loaded", zap.String("table", table), zap.Int("rows", counts[table]))
	}
	return counts, nil
}

// wipe deletes all rows in reverse dependency order so the foreign keys
// never dangle mid-load.
func (s *Store) wipe(ctx context.Context) error {
	for _, table := range []string{"usage_logs", "subscriptions", "content", "plans", "customers"} {
		if err := s.db.WithContext(ctx).Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("wipe %s: %w", table, err)
		}
	}
	return nil
}

func insert[T any](ctx context.Context, conn *gorm.DB, table string, rows []T, counts map[string]int) error {
	if len(rows) > 0 {
		if err := conn.WithContext(ctx).CreateInBatches(rows, batchSize).Error; err != nil {
			return fmt.Errorf("load %s: %w", table, err)
		}
	}
	counts[table] = len(rows)
	return nil
}

func rejectedIn(rep *validationdomain.Report, table string) skipFunc {
	if rep == nil {
		return func(int64) bool { return false }
	}
	t := rep.Table(table)
	return t.IsRejected
}
