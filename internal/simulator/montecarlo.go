package simulator

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"runtime"
	"sort"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/lox/deckodds/internal/accrual"
	"github.com/lox/deckodds/internal/deck"
	"github.com/lox/deckodds/internal/draw"
	"github.com/lox/deckodds/internal/randutil"
	"github.com/lox/deckodds/internal/stats"
)

// progressInterval is how many samples a worker completes between
// progress updates.
const progressInterval = 1000

// stepSums is the per-draw-step accumulator for one worker. Merging
// shards is pure addition, which is what makes the sample loop safe to
// parallelize.
type stepSums struct {
	weapons          float64
	weaponSeen       int // samples with >=1 weapon seen by this step
	oneTimeResources float64
	perTurnResources float64
	oneTimeDraw      float64
	perTurnDraw      float64
	costSeen         float64
	resourceTotal    float64
	resourceNet      float64
	drawTotal        float64
	cardsInHand      float64
}

func (s *stepSums) add(o *stepSums) {
	s.weapons += o.weapons
	s.weaponSeen += o.weaponSeen
	s.oneTimeResources += o.oneTimeResources
	s.perTurnResources += o.perTurnResources
	s.oneTimeDraw += o.oneTimeDraw
	s.perTurnDraw += o.perTurnDraw
	s.costSeen += o.costSeen
	s.resourceTotal += o.resourceTotal
	s.resourceNet += o.resourceNet
	s.drawTotal += o.drawTotal
	s.cardsInHand += o.cardsInHand
}

// cardSums accumulates per-unique-card hit counts across samples.
type cardSums struct {
	card      deck.Card
	opening   int // samples where the key was in the opening hand
	byDraw    int // samples where the key was seen by the threshold
	drawBonus int // running one-time draw bonus, once per sample
}

// StepAverage is the per-step output of a Monte Carlo run: every total
// divided by the sample count.
type StepAverage struct {
	Step             int
	Weapons          float64
	WeaponHitRate    float64
	WeaponHitMargin  float64 // 95% confidence half-width on the hit rate
	OneTimeResources float64
	PerTurnResources float64
	OneTimeDraw      float64
	PerTurnDraw      float64
	CostSeen         float64
	ResourceTotal    float64
	ResourceNet      float64
	DrawTotal        float64
	CardsInHand      float64
}

// CardStat is the per-unique-card output of a Monte Carlo run.
type CardStat struct {
	Key          string
	Label        string
	OpeningRate  float64 // fraction of samples seen in the opening hand
	ByDrawRate   float64 // fraction of samples seen by the draw threshold
	AvgDrawBonus float64
}

// MonteCarloResult aggregates S independent samples.
type MonteCarloResult struct {
	Samples int
	ByDraw  int
	Steps   []StepAverage
	Cards   []CardStat
}

// RunMonteCarlo runs S independent shuffle-and-draw samples and
// averages the accrued totals at every step. Samples are sharded
// across workers with independent RNG streams derived from the seed;
// the final reduction is addition, so the shard layout does not change
// what is being estimated.
func RunMonteCarlo(req Request) (*MonteCarloResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Samples < 1 {
		return nil, fmt.Errorf("sample count must be positive, got %d", req.Samples)
	}

	workers := req.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > req.Samples {
		workers = req.Samples
	}

	if req.Logger != nil {
		req.Logger.Debug("starting monte carlo run",
			"samples", req.Samples, "workers", workers, "seed", req.Seed)
	}

	steps := req.NextDraws + 1
	threshold := req.byDrawThreshold()

	type shard struct {
		steps []stepSums
		cards map[string]*cardSums
	}

	g, ctx := errgroup.WithContext(context.Background())
	results := make(chan shard, workers)
	var done atomic.Int64

	samplesPerWorker := req.Samples / workers
	remainder := req.Samples % workers

	for w := 0; w < workers; w++ {
		samples := samplesPerWorker
		if w < remainder {
			samples++
		}
		seed := randutil.WorkerSeed(req.Seed, w)

		g.Go(func() error {
			rng := randutil.New(seed)
			sh := shard{
				steps: make([]stepSums, steps),
				cards: make(map[string]*cardSums),
			}

			for i := 0; i < samples; i++ {
				if err := runOneSample(&req, rng, threshold, sh.steps, sh.cards); err != nil {
					return err
				}
				if n := done.Add(1); req.Progress != nil && n%progressInterval == 0 {
					req.Progress.Progress(int(n), req.Samples)
				}
			}

			select {
			case results <- sh:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	go func() {
		g.Wait()
		close(results)
	}()

	merged := make([]stepSums, steps)
	cards := make(map[string]*cardSums)
	for sh := range results {
		for i := range merged {
			merged[i].add(&sh.steps[i])
		}
		for key, cs := range sh.cards {
			if have, ok := cards[key]; ok {
				have.opening += cs.opening
				have.byDraw += cs.byDraw
				have.drawBonus += cs.drawBonus
			} else {
				cards[key] = cs
			}
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if req.Progress != nil {
		req.Progress.Progress(req.Samples, req.Samples)
	}

	return reduce(&req, threshold, merged, cards), nil
}

// runOneSample executes one shuffle/draw/accrue pass and folds it into
// the worker's accumulators.
func runOneSample(req *Request, rng *rand.Rand, threshold int, sums []stepSums, cards map[string]*cardSums) error {
	state, err := draw.OpeningHand(req.Deck.Shuffled(rng), req.HandSize, rng)
	if err != nil {
		return fmt.Errorf("resolving opening hand: %w", err)
	}

	ledger := accrual.NewLedger(req.HandSize, req.CardsPerTurn)
	for _, c := range state.OpeningHand {
		ledger.See(c, 0)
	}
	drawn := state.Next(req.NextDraws)

	accumulate(&sums[0], ledger.Totals(0))
	for i, c := range drawn {
		ledger.See(c, i+1)
		accumulate(&sums[i+1], ledger.Totals(i+1))
	}

	// per-card flags, each counted at most once per sample
	for key := range ledger.SeenKeys() {
		first, _ := ledger.FirstSeen(key)
		if first > threshold {
			continue
		}

		cs, ok := cards[key]
		if !ok {
			cs = &cardSums{card: cardForKey(state, drawn, key)}
			cards[key] = cs
		}
		if first == 0 {
			cs.opening++
		}
		cs.byDraw++
		cs.drawBonus += cs.card.Draw
	}

	return nil
}

func accumulate(s *stepSums, t accrual.StepTotals) {
	s.weapons += float64(t.Weapons)
	if t.Weapons > 0 {
		s.weaponSeen++
	}
	s.oneTimeResources += float64(t.OneTimeResources)
	s.perTurnResources += float64(t.PerTurnResources)
	s.oneTimeDraw += float64(t.OneTimeDraw)
	s.perTurnDraw += float64(t.PerTurnDraw)
	s.costSeen += float64(t.CostSeen)
	s.resourceTotal += float64(t.ResourceTotal)
	s.resourceNet += float64(t.ResourceNet)
	s.drawTotal += float64(t.DrawTotal)
	s.cardsInHand += t.CardsInHand
}

// cardForKey finds a representative physical copy for the key among
// the cards this sample actually saw.
func cardForKey(state *draw.State, drawn []deck.Card, key string) deck.Card {
	for _, c := range state.OpeningHand {
		if c.Key() == key {
			return c
		}
	}
	for _, c := range drawn {
		if c.Key() == key {
			return c
		}
	}
	return deck.Card{Name: key}
}

// reduce divides the merged totals by the sample count and sorts the
// per-card rows.
func reduce(req *Request, threshold int, sums []stepSums, cards map[string]*cardSums) *MonteCarloResult {
	n := float64(req.Samples)

	result := &MonteCarloResult{
		Samples: req.Samples,
		ByDraw:  threshold,
		Steps:   make([]StepAverage, len(sums)),
	}
	for i, s := range sums {
		hitRate := stats.Proportion{Hits: s.weaponSeen, N: req.Samples}
		result.Steps[i] = StepAverage{
			Step:             i,
			Weapons:          s.weapons / n,
			WeaponHitRate:    hitRate.Estimate(),
			WeaponHitMargin:  hitRate.Margin95(),
			OneTimeResources: s.oneTimeResources / n,
			PerTurnResources: s.perTurnResources / n,
			OneTimeDraw:      s.oneTimeDraw / n,
			PerTurnDraw:      s.perTurnDraw / n,
			CostSeen:         s.costSeen / n,
			ResourceTotal:    s.resourceTotal / n,
			ResourceNet:      s.resourceNet / n,
			DrawTotal:        s.drawTotal / n,
			CardsInHand:      s.cardsInHand / n,
		}
	}

	for key, cs := range cards {
		result.Cards = append(result.Cards, CardStat{
			Key:          key,
			Label:        cs.card.String(),
			OpeningRate:  float64(cs.opening) / n,
			ByDrawRate:   float64(cs.byDraw) / n,
			AvgDrawBonus: float64(cs.drawBonus) / n,
		})
	}
	sort.Slice(result.Cards, func(i, j int) bool {
		a, b := result.Cards[i], result.Cards[j]
		if a.ByDrawRate != b.ByDrawRate {
			return a.ByDrawRate > b.ByDrawRate
		}
		if a.OpeningRate != b.OpeningRate {
			return a.OpeningRate > b.OpeningRate
		}
		return a.Label < b.Label
	})

	return result
}
