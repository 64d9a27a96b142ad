// Package genetic implements a genetic algorithm over item permutations.
// Chromosomes are orderings of the item indices; a first-fit decoder turns
// an ordering into a packing, so every chromosome maps to a feasible state.
package genetic

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/packlab/binpack/internal/objective"
	"github.com/packlab/binpack/internal/packing"
	"github.com/packlab/binpack/internal/problem"
	"github.com/packlab/binpack/internal/search"
	"github.com/packlab/binpack/pkg/utils"
)

// Selection names a parent selection scheme.
type Selection string

const (
	Tournament Selection = "tournament"
	Roulette   Selection = "roulette"
)

// Config holds the GA parameters. Stagnation is the number of consecutive
// generations without best improvement before stopping; zero disables it.
type Config struct {
	Population     int
	Generations    int
	CrossoverRate  float64
	MutationRate   float64
	Selection      Selection
	TournamentSize int
	Elitism        int
	Stagnation     int
}

// DefaultConfig returns the standard GA settings.
func DefaultConfig() Config {
	return Config{
		Population:     50,
		Generations:    200,
		CrossoverRate:  0.9,
		MutationRate:   0.2,
		Selection:      Tournament,
		TournamentSize: 3,
		Elitism:        2,
		Stagnation:     50,
	}
}

// Validate checks the parameters before any search starts.
func (c Config) Validate() error {
	if c.Population < 2 {
		return fmt.Errorf("%w: population must be at least 2, got %d", search.ErrInvalidConfig, c.Population)
	}
	if c.Generations <= 0 {
		return fmt.Errorf("%w: generations must be positive, got %d", search.ErrInvalidConfig, c.Generations)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf("%w: crossover rate must be in [0, 1], got %g", search.ErrInvalidConfig, c.CrossoverRate)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("%w: mutation rate must be in [0, 1], got %g", search.ErrInvalidConfig, c.MutationRate)
	}
	switch c.Selection {
	case Tournament:
		if c.TournamentSize < 1 || c.TournamentSize > c.Population {
			return fmt.Errorf("%w: tournament size must be in [1, population], got %d", search.ErrInvalidConfig, c.TournamentSize)
		}
	case Roulette:
	default:
		return fmt.Errorf("%w: unknown selection scheme %q", search.ErrInvalidConfig, c.Selection)
	}
	if c.Elitism < 0 || c.Elitism >= c.Population {
		return fmt.Errorf("%w: elitism must be in [0, population), got %d", search.ErrInvalidConfig, c.Elitism)
	}
	if c.Stagnation < 0 {
		return fmt.Errorf("%w: stagnation cannot be negative, got %d", search.ErrInvalidConfig, c.Stagnation)
	}
	return nil
}

// individual pairs a chromosome with its decoded score.
type individual struct {
	perm  []int
	score float64
}

// Solver runs one GA evolution. Not safe for concurrent use; construct
// one per run.
type Solver struct {
	cfg  Config
	eval *objective.Evaluator
	rng  *utils.RandSource
}

// New builds a Solver after validating cfg.
func New(cfg Config, eval *objective.Evaluator, rng *utils.RandSource) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Solver{cfg: cfg, eval: eval, rng: rng}, nil
}

func (s *Solver) Name() string {
	return string(search.Genetic)
}

// Solve evolves the population until the generation cap or stagnation.
func (s *Solver) Solve(ctx context.Context, p *problem.Problem) (search.Result, error) {
	if p.Size() == 0 {
		return search.EmptyResult(s.Name()), nil
	}

	start := time.Now()
	res := search.Result{Algorithm: s.Name()}

	pop := s.seedPopulation(p, &res)
	sortByScore(pop)
	best := pop[0]
	res.History = append(res.History, best.score)

	stagnant := 0
	res.Termination = search.TerminationMaxIterations
	for gen := 0; gen < s.cfg.Generations; gen++ {
		if err := search.Cancelled(ctx, s.Name()); err != nil {
			return res, err
		}
		res.Iterations++

		pop = s.nextGeneration(p, pop, &res)
		sortByScore(pop)

		if pop[0].score < best.score-1e-9 {
			best = pop[0]
			stagnant = 0
		} else {
			stagnant++
		}
		res.History = append(res.History, best.score)

		if s.cfg.Stagnation > 0 && stagnant >= s.cfg.Stagnation {
			res.Termination = search.TerminationStagnation
			break
		}
	}

	state := packing.Decode(p, best.perm)
	search.Finish(&res, state, best.score, start)
	return res, nil
}

// seedPopulation builds the initial population: one decreasing-weight
// permutation as a greedy first-fit-decreasing seed, the rest random.
func (s *Solver) seedPopulation(p *problem.Problem, res *search.Result) []individual {
	pop := make([]individual, s.cfg.Population)

	greedy := make([]int, p.Size())
	for i := range greedy {
		greedy[i] = i
	}
	sort.SliceStable(greedy, func(a, b int) bool {
		return p.Items[greedy[a]].Weight > p.Items[greedy[b]].Weight
	})
	pop[0] = s.evaluate(p, greedy, res)

	for i := 1; i < s.cfg.Population; i++ {
		pop[i] = s.evaluate(p, s.rng.Perm(p.Size()), res)
	}
	return pop
}

// nextGeneration produces the next population: elites carried over
// unchanged, the rest bred by selection, crossover and mutation.
func (s *Solver) nextGeneration(p *problem.Problem, pop []individual, res *search.Result) []individual {
	next := make([]individual, 0, s.cfg.Population)
	next = append(next, pop[:s.cfg.Elitism]...)

	for len(next) < s.cfg.Population {
		p1 := s.selectParent(pop)
		p2 := s.selectParent(pop)

		var child []int
		if s.rng.Float64() < s.cfg.CrossoverRate {
			child = orderCrossover(s.rng, p1.perm, p2.perm)
		} else {
			child = make([]int, len(p1.perm))
			copy(child, p1.perm)
		}
		if s.rng.Float64() < s.cfg.MutationRate {
			swapMutation(s.rng, child)
		}
		next = append(next, s.evaluate(p, child, res))
	}
	return next
}

func (s *Solver) evaluate(p *problem.Problem, perm []int, res *search.Result) individual {
	score := s.eval.Evaluate(packing.Decode(p, perm))
	res.Evaluations++
	return individual{perm: perm, score: score}
}

// selectParent picks one parent under the configured scheme.
func (s *Solver) selectParent(pop []individual) individual {
	if s.cfg.Selection == Roulette {
		return s.rouletteSelect(pop)
	}
	return s.tournamentSelect(pop)
}

// tournamentSelect draws TournamentSize candidates with replacement and
// returns the best.
func (s *Solver) tournamentSelect(pop []individual) individual {
	best := pop[s.rng.Intn(len(pop))]
	for i := 1; i < s.cfg.TournamentSize; i++ {
		cand := pop[s.rng.Intn(len(pop))]
		if cand.score < best.score {
			best = cand
		}
	}
	return best
}

// rouletteSelect draws proportionally to inverted score: for a
// minimization objective the wheel slice of an individual is the distance
// from the worst score in the population, plus a floor so the worst still
// has a chance.
func (s *Solver) rouletteSelect(pop []individual) individual {
	worst := pop[0].score
	for _, ind := range pop[1:] {
		if ind.score > worst {
			worst = ind.score
		}
	}

	total := 0.0
	for _, ind := range pop {
		total += worst - ind.score + 1
	}

	target := s.rng.Float64() * total
	acc := 0.0
	for _, ind := range pop {
		acc += worst - ind.score + 1
		if acc >= target {
			return ind
		}
	}
	return pop[len(pop)-1]
}

func sortByScore(pop []individual) {
	sort.SliceStable(pop, func(a, b int) bool {
		return pop[a].score < pop[b].score
	})
}
