// Command existon-run ticks an existon universe headlessly at a fixed
// rate and reports population counts, for watching the dynamics without
// a GUI build.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"existon-ca/internal/core"
	"existon-ca/internal/sims/existon"
)

func main() {
	dims := flag.String("dims", "120x80", "grid extents joined by 'x'")
	p := flag.Int("p", 2, "algebra order")
	seed := flag.Int64("seed", 1337, "reset seed")
	ticks := flag.Int("ticks", 600, "ticks to simulate (0 runs forever)")
	tps := flag.Int("tps", 0, "pace ticks at this rate (0 runs unpaced)")
	report := flag.Int("report", 60, "report every N ticks")
	flag.Parse()

	cfg := existon.FromMap(map[string]string{
		"dims": *dims,
		"p":    fmt.Sprintf("%d", *p),
	})
	universe, err := existon.NewWithConfig(cfg)
	if err != nil {
		log.Fatalf("bad configuration: %v", err)
	}
	universe.Reset(*seed)

	fmt.Printf("existon universe %v p=%d (%d blades per cell)\n",
		universe.Dims(), universe.P(), 1<<universe.P())

	var pacer *core.FixedStep
	if *tps > 0 {
		pacer = core.NewFixedStep(*tps)
	}

	for done := 0; *ticks == 0 || done < *ticks; {
		if pacer != nil && !pacer.ShouldStep() {
			time.Sleep(time.Millisecond)
			continue
		}
		universe.Step()
		done++
		if *report > 0 && done%*report == 0 {
			potential, observed, operator := universe.Counts()
			fmt.Printf("tick %6d  potential=%d observed=%d operator=%d\n",
				universe.Ticks(), potential, observed, operator)
		}
	}
}
