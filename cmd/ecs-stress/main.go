package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/strata/ecs"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create.")
	churn := flag.Int("churn", 100, "Entities to remove and respawn each frame.")
	seed := flag.Int64("seed", 1, "Random seed for the workload.")
	profileMode := flag.String("profile", "", "Write a profile: cpu or mem.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	switch *profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	case "":
	default:
		log.Fatalf("unknown profile mode %q", *profileMode)
	}

	log.Println("Starting ECS stress test...")

	rng := rand.New(rand.NewSource(*seed))

	// 1. Setup registry, model and scheduler
	registry := ecs.NewComponentRegistry()
	RegisterStressComponents(registry)
	model := ecs.NewModel(registry)
	scheduler := ecs.NewScheduler(model)
	systemCount := InstallStressSystems(model, scheduler)

	// 2. Populate the model with initial entities
	log.Printf("Populating model with %d entities...\n", *entityCount)
	live := make([]ecs.Entity, 0, *entityCount)
	for i := 0; i < *entityCount; i++ {
		// Spawn an entity with 1 to 5 random components
		numComponents := rng.Intn(5) + 1
		live = append(live, SpawnRandomEntity(model, rng, numComponents))
	}
	log.Println("Population complete.")

	// 3. Run the simulation loop
	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Components:     registry.Len(),
		Systems:        systemCount,
		Churn:          *churn,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			if err := scheduler.Once(float64(deltaTime) / float64(time.Second)); err != nil {
				log.Fatalf("Update failed: %v", err)
			}
			updateDuration := time.Since(updateStart)

			live = churnEntities(model, rng, live, *churn)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.FinalStats = model.CollectStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	// 4. Generate report to console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

// churnEntities removes n random live entities and spawns n replacements,
// keeping the population steady while exercising slot reuse and swap removal.
func churnEntities(model *ecs.Model, rng *rand.Rand, live []ecs.Entity, n int) []ecs.Entity {
	for i := 0; i < n && len(live) > 0; i++ {
		j := rng.Intn(len(live))
		// Aging may have removed it already; ignore dead handles.
		_ = model.RemoveEntity(live[j])
		live[j] = live[len(live)-1]
		live = live[:len(live)-1]
	}
	for i := 0; i < n; i++ {
		live = append(live, SpawnRandomEntity(model, rng, rng.Intn(5)+1))
	}
	return live
}
