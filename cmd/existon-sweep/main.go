// Command existon-sweep explores how the observation and decay rates
// shape the equilibrium between Potential and Observed populations. Each
// rate pair runs in its own scenario on a worker pool and the results are
// reported sorted by equilibrium observed fraction.
package main

import (
	"flag"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"existon-ca/internal/sims/existon"
)

type paramSet struct {
	observation float64
	decay       float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("obs=%.4f decay=%.3f", p.observation, p.decay)
}

type scenarioResult struct {
	params           paramSet
	observedFraction float64
	peakObserved     int
}

func main() {
	steps := flag.Int("steps", 400, "ticks to simulate per scenario")
	settle := flag.Int("settle", 300, "ticks to discard before measuring")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	flag.Parse()

	baseCfg := existon.DefaultConfig()
	baseCfg.Dims = []int{64, 64}
	baseCfg.Rates.Fluctuation = 0.002
	baseCfg.Rates.Entanglement = 0.05

	observationOptions := []float64{0.0001, 0.0005, 0.002, 0.01, 0.05}
	decayOptions := []float64{0.002, 0.01, 0.05, 0.2}

	var sets []paramSet
	for _, obs := range observationOptions {
		for _, decay := range decayOptions {
			sets = append(sets, paramSet{observation: obs, decay: decay})
		}
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %d steps)\n", len(sets), *workers, *steps)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(baseCfg, params, *steps, *settle)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		all = append(all, res)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].observedFraction > all[j].observedFraction })
	elapsed := time.Since(start)

	fmt.Printf("\nEquilibria (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i, res := range all {
		fmt.Printf("%2d) observed=%.4f peak=%d %s\n", i+1, res.observedFraction, res.peakObserved, res.params)
	}
}

func runScenario(base existon.Config, params paramSet, steps, settle int) scenarioResult {
	cfg := base
	cfg.Rates.Observation = params.observation
	cfg.Rates.Decay = params.decay

	universe, err := existon.NewWithConfig(cfg)
	if err != nil {
		panic(err)
	}
	universe.Reset(1337)

	total := 1
	for _, d := range cfg.Dims {
		total *= d
	}

	var sum float64
	var samples int
	var peak int
	for step := 0; step < steps; step++ {
		universe.Step()
		_, observed, _ := universe.Counts()
		if observed > peak {
			peak = observed
		}
		if step >= settle {
			sum += float64(observed) / float64(total)
			samples++
		}
	}

	fraction := 0.0
	if samples > 0 {
		fraction = sum / float64(samples)
	}
	return scenarioResult{params: params, observedFraction: fraction, peakObserved: peak}
}
