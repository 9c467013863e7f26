// Command navdemo scatters obstacles and surfaces across a bounded
// world, settles the mesh, and logs what came out. Placement is
// rejection sampling: draw a candidate rect, skip it if it overlaps
// something already placed, retry up to a fixed attempt cap.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"

	"navmesh2d"
	"navmesh2d/geometry"
	"navmesh2d/logging"
	"navmesh2d/logging/sinks"
)

const (
	obstacleMinSide    = 1.0
	obstacleMaxSide    = 4.0
	obstacleSpawnTries = 20
)

func main() {
	obstacleCount := flag.Int("obstacles", 12, "number of obstacles to scatter")
	surfaceCount := flag.Int("surfaces", 3, "number of surfaces to scatter")
	seed := flag.Int64("seed", 1, "random seed")
	agentRadius := flag.Float64("agent-radius", 0.5, "agent radius used to inflate every element")
	flag.Parse()

	router, err := logging.NewRouter(nil, logging.DefaultConfig(), []logging.NamedSink{
		{Name: "console", Sink: sinks.NewConsoleSink(os.Stdout, logging.ConsoleConfig{})},
	})
	if err != nil {
		log.Fatalf("navdemo: build logging router: %v", err)
	}
	defer router.Close(context.Background())

	mesh, err := navmesh2d.NewNav2D(
		geometry.Vector2{X: -50, Y: -50},
		geometry.Vector2{X: 50, Y: 50},
		*agentRadius,
		navmesh2d.DefaultAccuracy,
		navmesh2d.WithPublisher(router),
	)
	if err != nil {
		log.Fatalf("navdemo: construct Nav2D: %v", err)
	}

	rng := rand.New(rand.NewSource(*seed))
	scatterObstacles(mesh, rng, *obstacleCount)
	scatterSurfaces(mesh, rng, *surfaceCount)

	if err := mesh.Update(); err != nil {
		log.Fatalf("navdemo: settle mesh: %v", err)
	}

	log.Printf("navdemo: %d obstacles, %d surfaces, %d nav points, %d connections",
		len(mesh.Obstacles()), len(mesh.Surfaces()), len(mesh.NavPoints()), len(mesh.Connections()))
}

func scatterObstacles(mesh *navmesh2d.Nav2D, rng *rand.Rand, count int) {
	placed := make([]geometry.Rect, 0, count)
	for i := 0; i < count && len(placed) < count; i++ {
		for attempt := 0; attempt < obstacleSpawnTries; attempt++ {
			side := obstacleMinSide + rng.Float64()*(obstacleMaxSide-obstacleMinSide)
			position := geometry.Vector2{X: rng.Float64()*80 - 40, Y: rng.Float64()*80 - 40}
			candidate := geometry.Rect{
				Min: geometry.Vector2{X: position.X - side/2, Y: position.Y - side/2},
				Max: geometry.Vector2{X: position.X + side/2, Y: position.Y + side/2},
			}
			if overlapsAny(candidate, placed) {
				continue
			}
			if _, err := mesh.AddObstacle(square(side), position, 0, 0); err != nil {
				log.Printf("navdemo: skip obstacle: %v", err)
				break
			}
			placed = append(placed, candidate)
			break
		}
	}
}

func scatterSurfaces(mesh *navmesh2d.Nav2D, rng *rand.Rand, count int) {
	for i := 0; i < count; i++ {
		side := obstacleMaxSide * 2
		position := geometry.Vector2{X: rng.Float64()*60 - 30, Y: rng.Float64()*60 - 30}
		if _, err := mesh.AddSurface(square(side), position, 0, 1.0, 0); err != nil {
			log.Printf("navdemo: skip surface: %v", err)
		}
	}
}

func overlapsAny(candidate geometry.Rect, placed []geometry.Rect) bool {
	for _, r := range placed {
		if candidate.Intersects(r) {
			return true
		}
	}
	return false
}

func square(side float64) []geometry.Vector2 {
	half := side / 2
	return []geometry.Vector2{
		{X: -half, Y: -half},
		{X: half, Y: -half},
		{X: half, Y: half},
		{X: -half, Y: half},
	}
}
