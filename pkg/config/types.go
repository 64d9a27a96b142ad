package config

// Config is the run configuration file. Every section is optional; absent
// values fall back to Default(). CLI flags override file values.
type Config struct {
	LogLevel   string     `yaml:"log_level"`
	Experiment Experiment `yaml:"experiment"`
	HillClimb  HillClimb  `yaml:"hill_climb"`
	Annealing  Annealing  `yaml:"annealing"`
	Genetic    Genetic    `yaml:"genetic"`
	Demo       Demo       `yaml:"demo"`
}

// Experiment selects what to run and how.
type Experiment struct {
	Algorithms  []string `yaml:"algorithms"`
	Repeats     int      `yaml:"repeats"`
	Seed        int64    `yaml:"seed"`
	Parallelism int      `yaml:"parallelism"`
}

// HillClimb parameterizes all hill-climbing variants.
type HillClimb struct {
	MaxIterations int `yaml:"max_iterations"`
	MaxSideways   int `yaml:"max_sideways"`
	Restarts      int `yaml:"restarts"`
}

// Annealing parameterizes the simulated annealing schedule.
type Annealing struct {
	InitialTemp       float64 `yaml:"initial_temp"`
	CoolingRate       float64 `yaml:"cooling_rate"`
	MinTemp           float64 `yaml:"min_temp"`
	IterationsPerTemp int     `yaml:"iterations_per_temp"`
	MaxIterations     int     `yaml:"max_iterations"`
}

// Genetic parameterizes the genetic algorithm.
type Genetic struct {
	Population     int     `yaml:"population"`
	Generations    int     `yaml:"generations"`
	CrossoverRate  float64 `yaml:"crossover_rate"`
	MutationRate   float64 `yaml:"mutation_rate"`
	Selection      string  `yaml:"selection"`
	TournamentSize int     `yaml:"tournament_size"`
	Elitism        int     `yaml:"elitism"`
	Stagnation     int     `yaml:"stagnation"`
}

// Demo parameterizes the generated demo instance.
type Demo struct {
	Items     int     `yaml:"items"`
	Capacity  float64 `yaml:"capacity"`
	MinWeight int     `yaml:"min_weight"`
	MaxWeight int     `yaml:"max_weight"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Experiment: Experiment{
			Algorithms:  []string{"all"},
			Repeats:     1,
			Seed:        1,
			Parallelism: 0, // 0 means one worker per CPU
		},
		HillClimb: HillClimb{
			MaxIterations: 1000,
			MaxSideways:   10,
			Restarts:      5,
		},
		Annealing: Annealing{
			InitialTemp:       1000,
			CoolingRate:       0.95,
			MinTemp:           0.01,
			IterationsPerTemp: 50,
			MaxIterations:     100000,
		},
		Genetic: Genetic{
			Population:     50,
			Generations:    200,
			CrossoverRate:  0.9,
			MutationRate:   0.2,
			Selection:      "tournament",
			TournamentSize: 3,
			Elitism:        2,
			Stagnation:     50,
		},
		Demo: Demo{
			Items:     20,
			Capacity:  100,
			MinWeight: 10,
			MaxWeight: 80,
		},
	}
}
