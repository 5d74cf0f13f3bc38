package generator

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gosimple/slug"
	"github.com/streamhaven/dataforge/internal/clock"
	"github.com/streamhaven/dataforge/internal/config"
	"github.com/streamhaven/dataforge/internal/customer/domain"
	"github.com/streamhaven/dataforge/internal/randsrc"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const stageName = "generate.customers"

type Params struct {
	fx.In

	Cfg config.Config
	Log *zap.Logger
	Src *randsrc.Source
	Clk clock.Clock
}

// Generator produces the customer table: sequential ids from 1, signup dates
// uniform over the signup lookback window, uniform device/country draws, and
// unique emails.
type Generator struct {
	cfg config.Config
	log *zap.Logger
	src *randsrc.Source
	clk clock.Clock
}

func New(p Params) *Generator {
	return &Generator{
		cfg: p.Cfg,
		log: p.Log.Named("customer.generator"),
		src: p.Src,
		clk: p.Clk,
	}
}

func (g *Generator) Generate(ctx context.Context) ([]domain.Customer, error) {
	_ = ctx
	r := g.src.Stream(stageName)
	faker := gofakeit.New(g.src.StageSeed(stageName))

	now := g.clk.Now()
	earliest := now.AddDate(0, 0, -g.cfg.Generation.SignupLookbackDays)

	devices := make([]randsrc.Weighted[string], 0, len(domain.DeviceTypes))
	for _, d := range domain.DeviceTypes {
		devices = append(devices, randsrc.Weighted[string]{Value: d, Weight: 1})
	}
	countries := make([]randsrc.Weighted[string], 0, len(domain.Countries))
	for _, c := range domain.Countries {
		countries = append(countries, randsrc.Weighted[string]{Value: c, Weight: 1})
	}

	seen := make(map[string]struct{}, g.cfg.Volumes.Customers)
	customers := make([]domain.Customer, 0, g.cfg.Volumes.Customers)
	for id := int64(1); id <= int64(g.cfg.Volumes.Customers); id++ {
		name := faker.Name()
		email := emailFor(name, id)
		// Retry on collision; the id suffix makes this converge immediately.
		for _, taken := seen[email]; taken; _, taken = seen[email] {
			name = faker.Name()
			email = emailFor(name, id)
		}
		seen[email] = struct{}{}

		customers = append(customers, domain.Customer{
			ID:         id,
			Name:       name,
			Email:      email,
			SignupDate: randsrc.DateBetween(r, earliest, now),
			DeviceType: randsrc.Pick(r, devices),
			Country:    randsrc.Pick(r, countries),
		})
	}

	g.log.Info("customers generated",
		zap.Int("count", len(customers)),
		zap.Time("signup_window_start", earliest),
	)
	return customers, nil
}

func emailFor(name string, id int64) string {
	return fmt.Sprintf("%s.%d@example.com", slug.Make(name), id)
}
