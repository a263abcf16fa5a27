// Package headline produces SEO headlines for the reference backend.
package headline

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

// Generator writes a headline for a business.
type Generator interface {
	Generate(ctx context.Context, name, location string) (string, error)
}

var templates = []string{
	"Why %s is %s's Sweetest Spot in %d",
	"Discover %s: %s's Best Kept Secret",
	"%s - The Talk of %s This Season",
	"Top Rated in %[2]s: How %[1]s Wins Every Customer",
	"%s Brings Fresh Flavour to %s",
	"Locals in %[2]s Can't Stop Talking About %[1]s",
	"Experience %s, %s's Favourite Destination",
	"Is %s the Best Business in %s? Reviews Say Yes",
}

// TemplateGenerator picks from a fixed set of headline templates. It is the
// fallback when no Gemini key is configured.
type TemplateGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

func NewTemplateGenerator(seed uint64) *TemplateGenerator {
	return &TemplateGenerator{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now: time.Now,
	}
}

func (g *TemplateGenerator) Generate(_ context.Context, name, location string) (string, error) {
	name, location = strings.TrimSpace(name), strings.TrimSpace(location)
	if name == "" || location == "" {
		return "", fmt.Errorf("name and location are required")
	}

	g.mu.Lock()
	tmpl := templates[g.rng.IntN(len(templates))]
	g.mu.Unlock()

	if strings.Contains(tmpl, "%d") {
		return fmt.Sprintf(tmpl, name, location, g.now().Year()), nil
	}
	return fmt.Sprintf(tmpl, name, location), nil
}
