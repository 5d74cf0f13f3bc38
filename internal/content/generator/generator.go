package generator

import (
	"context"
	"math/rand"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/streamhaven/dataforge/internal/config"
	"github.com/streamhaven/dataforge/internal/content/domain"
	"github.com/streamhaven/dataforge/internal/randsrc"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const stageName = "generate.content"

type Params struct {
	fx.In

	Cfg config.Config
	Log *zap.Logger
	Src *randsrc.Source
}

// Generator produces the content catalog with the target 50/30/20 genre mix
// and genre-specific uniform durations.
type Generator struct {
	cfg config.Config
	log *zap.Logger
	src *randsrc.Source
}

func New(p Params) *Generator {
	return &Generator{
		cfg: p.Cfg,
		log: p.Log.Named("content.generator"),
		src: p.Src,
	}
}

func (g *Generator) Generate(ctx context.Context) ([]domain.Content, error) {
	_ = ctx
	r := g.src.Stream(stageName)
	faker := gofakeit.New(g.src.StageSeed(stageName))

	genres := g.allocateGenres(r)
	rows := make([]domain.Content, 0, len(genres))
	for i, genre := range genres {
		bounds := domain.DurationRanges[genre]
		rows = append(rows, domain.Content{
			ID:              int64(i + 1),
			Title:           strings.TrimSuffix(faker.Sentence(3), "."),
			Genre:           genre,
			DurationMinutes: bounds.Min + r.Intn(bounds.Max-bounds.Min+1),
		})
	}

	counts := map[string]int{}
	for _, row := range rows {
		counts[row.Genre]++
	}
	g.log.Info("content generated",
		zap.Int("count", len(rows)),
		zap.Int("movies", counts[domain.GenreMovie]),
		zap.Int("music", counts[domain.GenreMusic]),
		zap.Int("podcasts", counts[domain.GenrePodcast]),
	)
	return rows, nil
}

// allocateGenres assigns floor(count*ratio) slots per genre, fills the
// remainder with weighted draws, and shuffles so ids are not grouped by genre.
func (g *Generator) allocateGenres(r *rand.Rand) []string {
	target := g.cfg.Volumes.Content
	genres := make([]string, 0, target)
	for _, genre := range domain.Genres {
		n := int(float64(target) * domain.GenreWeights[genre])
		for i := 0; i < n; i++ {
			genres = append(genres, genre)
		}
	}

	weighted := make([]randsrc.Weighted[string], 0, len(domain.Genres))
	for _, genre := range domain.Genres {
		weighted = append(weighted, randsrc.Weighted[string]{Value: genre, Weight: domain.GenreWeights[genre]})
	}
	for len(genres) < target {
		genres = append(genres, randsrc.Pick(r, weighted))
	}

	r.Shuffle(len(genres), func(i, j int) {
		genres[i], genres[j] = genres[j], genres[i]
	})
	return genres
}
