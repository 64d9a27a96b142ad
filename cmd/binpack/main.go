package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/packlab/binpack/internal/experiment"
	"github.com/packlab/binpack/internal/genetic"
	"github.com/packlab/binpack/internal/problem"
	"github.com/packlab/binpack/internal/report"
	"github.com/packlab/binpack/internal/search"
	"github.com/packlab/binpack/pkg/config"
	"github.com/packlab/binpack/pkg/logger"
	"github.com/packlab/binpack/pkg/utils"
)

func main() {
	app := kingpin.New("binpack", "Bin packing solver - packs weighted items into the fewest capacity-bounded bins using local search, annealing, and a genetic algorithm")
	inputFile := app.Flag("input", "Path to a JSON problem file").String()
	demo := app.Flag("demo", "Generate a random demo instance instead of reading a file").Bool()
	demoItems := app.Flag("demo-items", "Number of items in the demo instance").Default("0").Int()
	algorithm := app.Flag("algorithm", "Algorithm to run: all, steepest, stochastic, sideways, restart, sa, or ga (overrides the config file)").String()
	configFile := app.Flag("config", "Path to a YAML configuration file").String()
	seed := app.Flag("seed", "Base random seed (overrides the config file)").Default("0").Int64()
	output := app.Flag("output", "Directory for result exports").String()
	format := app.Flag("format", "Export format: json, csv, or both").Default("json").String()
	quiet := app.Flag("quiet", "Suppress the packing rendering").Bool()

	kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetDefault(log)
	defer func() {
		_ = log.Sync()
	}()

	flags := cliFlags{
		input:     *inputFile,
		demo:      *demo,
		demoItems: *demoItems,
		algorithm: *algorithm,
		seed:      *seed,
		output:    *output,
		format:    *format,
		quiet:     *quiet,
	}
	if err := run(cfg, flags, log); err != nil {
		log.Fatal("run failed", zap.Error(err))
	}
}

type cliFlags struct {
	input     string
	demo      bool
	demoItems int
	algorithm string
	seed      int64
	output    string
	format    string
	quiet     bool
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func run(cfg *config.Config, flags cliFlags, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	spec, err := buildSpec(cfg, flags)
	if err != nil {
		return err
	}

	p, err := buildProblem(cfg, flags, spec.Seed)
	if err != nil {
		return err
	}
	log.Info("problem loaded",
		zap.Int("items", p.Size()),
		zap.Float64("capacity", p.Capacity),
		zap.Int("lower_bound", p.LowerBound()))

	runner, err := experiment.NewRunner(spec)
	if err != nil {
		return err
	}
	runs, err := runner.Run(ctx, p)
	if err != nil {
		return err
	}

	stats := experiment.Summarize(runs)
	if err := report.RenderSummary(os.Stdout, stats); err != nil {
		return err
	}

	if best, ok := experiment.BestRun(runs); ok && !flags.quiet {
		fmt.Printf("\nbest packing (%s, %d bins, score %.2f):\n",
			best.Algorithm, best.Result.BinsUsed, best.Result.Score)
		if best.Result.Best != nil {
			if err := report.RenderState(os.Stdout, best.Result.Best); err != nil {
				return err
			}
		}
	}

	if flags.output != "" {
		if err := export(p, runs, flags.output, flags.format); err != nil {
			return err
		}
		log.Info("results exported", zap.String("dir", flags.output))
	}
	return nil
}

// buildSpec merges the config file with the CLI flags; flags win.
func buildSpec(cfg *config.Config, flags cliFlags) (experiment.Spec, error) {
	spec := experiment.DefaultSpec()

	names := cfg.Experiment.Algorithms
	if flags.algorithm != "" {
		names = []string{flags.algorithm}
	}
	algorithms, err := resolveAlgorithms(names)
	if err != nil {
		return experiment.Spec{}, err
	}
	spec.Algorithms = algorithms

	spec.Repeats = cfg.Experiment.Repeats
	spec.Seed = cfg.Experiment.Seed
	if flags.seed != 0 {
		spec.Seed = flags.seed
	}
	spec.Parallelism = cfg.Experiment.Parallelism
	if spec.Parallelism == 0 {
		spec.Parallelism = runtime.NumCPU()
	}

	spec.HillClimb.MaxIterations = cfg.HillClimb.MaxIterations
	spec.HillClimb.MaxSideways = cfg.HillClimb.MaxSideways
	spec.HillClimb.Restarts = cfg.HillClimb.Restarts

	spec.Annealing.InitialTemp = cfg.Annealing.InitialTemp
	spec.Annealing.CoolingRate = cfg.Annealing.CoolingRate
	spec.Annealing.MinTemp = cfg.Annealing.MinTemp
	spec.Annealing.IterationsPerTemp = cfg.Annealing.IterationsPerTemp
	spec.Annealing.MaxIterations = cfg.Annealing.MaxIterations

	spec.Genetic.Population = cfg.Genetic.Population
	spec.Genetic.Generations = cfg.Genetic.Generations
	spec.Genetic.CrossoverRate = cfg.Genetic.CrossoverRate
	spec.Genetic.MutationRate = cfg.Genetic.MutationRate
	spec.Genetic.Selection = geneticSelection(cfg.Genetic.Selection)
	spec.Genetic.TournamentSize = cfg.Genetic.TournamentSize
	spec.Genetic.Elitism = cfg.Genetic.Elitism
	spec.Genetic.Stagnation = cfg.Genetic.Stagnation

	return spec, nil
}

func resolveAlgorithms(names []string) ([]search.Algorithm, error) {
	var out []search.Algorithm
	for _, name := range names {
		if name == "all" {
			return search.All(), nil
		}
		a, err := search.ParseAlgorithm(name)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func geneticSelection(name string) genetic.Selection {
	if name == "roulette" {
		return genetic.Roulette
	}
	return genetic.Tournament
}

// buildProblem reads the input file, or generates a demo instance when
// --demo is set.
func buildProblem(cfg *config.Config, flags cliFlags, seed int64) (*problem.Problem, error) {
	if flags.demo {
		items := cfg.Demo.Items
		if flags.demoItems > 0 {
			items = flags.demoItems
		}
		return problem.Random(items, cfg.Demo.Capacity,
			cfg.Demo.MinWeight, cfg.Demo.MaxWeight, utils.NewRandSource(seed))
	}
	if flags.input == "" {
		return nil, fmt.Errorf("either --input or --demo is required")
	}
	return problem.Load(flags.input)
}

// export writes the report files into dir, creating it if needed.
func export(p *problem.Problem, runs []experiment.Run, dir, format string) error {
	if format != "json" && format != "csv" && format != "both" {
		return fmt.Errorf("unknown format %q (supported: json, csv, both)", format)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir %s: %w", dir, err)
	}

	rep := experiment.NewReport(p, runs)
	runID := utils.GenerateRunID()

	if format == "json" || format == "both" {
		path := filepath.Join(dir, runID+".json")
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		if err := rep.WriteJSON(f); err != nil {
			return err
		}
	}
	if format == "csv" || format == "both" {
		path := filepath.Join(dir, runID+".csv")
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		if err := rep.WriteCSV(f); err != nil {
			return err
		}
	}
	return nil
}
