package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"git.solver4all.com/azaryc2s/depotassign"
)

var routeCounts depotassign.ArrayIntFlags
var depotCounts depotassign.ArrayIntFlags
var name *string
var output *string
var count *int
var pvrMin *int
var pvrMax *int
var capSlack *float64
var sparsity *float64
var speed *float64
var xTo *int
var yTo *int

func main() {
	flag.Var(&routeCounts, "r", "List of numbers of routes")
	flag.Var(&depotCounts, "p", "List of numbers of depots")
	name = flag.String("name", "sitp", "Name prefix for the instances")
	output = flag.String("outputDir", ".", "Output directory")
	count = flag.Int("count", 1, "Number of instances per combination")
	pvrMin = flag.Int("pvrMin", 2, "Lowest peak vehicle requirement per route")
	pvrMax = flag.Int("pvrMax", 25, "Highest peak vehicle requirement per route")
	capSlack = flag.Float64("capSlack", 1.2, "Total capacity as multiple of total PVR (values < 1 produce deficit instances)")
	sparsity = flag.Float64("sparsity", 0.0, "Fraction of route-depot pairs without a known cost")
	speed = flag.Float64("speed", depotassign.AvgSpeedKmh, "Average speed in km/h used to derive the time matrix")
	xTo = flag.Int("x", 40, "Max coordinate on the x-axis in km")
	yTo = flag.Int("y", 40, "Max coordinate on the y-axis in km")

	flag.Parse()

	if len(routeCounts) == 0 || len(depotCounts) == 0 {
		log.Fatal("At least one -r and one -p value are required")
	}

	for l := 0; l < *count; l++ {
		rand.Seed(time.Now().UnixNano())
		for _, n := range routeCounts {
			for _, m := range depotCounts {
				inst := generate(n, m, l)
				fileName := fmt.Sprintf("%s/%s.json", *output, inst.Name)
				if err := depotassign.SaveInstance(fileName, inst); err != nil {
					log.Fatal(err)
				}
				log.Printf("Wrote %s (%d routes, %d depots)\n", fileName, n, m)
			}
		}
	}
}

func generate(n, m, nr int) *depotassign.Instance {
	routes := make([]depotassign.Route, n)
	routeCoords := make([][2]float64, n)
	totalPVR := 0
	for i := 0; i < n; i++ {
		pvr := *pvrMin + rand.Intn(*pvrMax-*pvrMin+1)
		routes[i] = depotassign.Route{ID: fmt.Sprintf("R%03d", i+1), PVR: pvr}
		routeCoords[i] = [2]float64{rand.Float64() * float64(*xTo), rand.Float64() * float64(*yTo)}
		totalPVR += pvr
	}

	depots := make([]depotassign.Depot, m)
	depotCoords := make([][2]float64, m)
	// Split the capacity budget across depots with some jitter.
	budget := float64(totalPVR) * *capSlack
	for i := 0; i < m; i++ {
		share := budget / float64(m) * (0.6 + rand.Float64()*0.8)
		depots[i] = depotassign.Depot{ID: fmt.Sprintf("P%02d", i+1), Capacity: math.Round(share)}
		depotCoords[i] = [2]float64{rand.Float64() * float64(*xTo), rand.Float64() * float64(*yTo)}
	}

	distances := make(depotassign.CostMatrix, m)
	times := make(depotassign.CostMatrix, m)
	for i, p := range depots {
		distRow := make(map[string]float64, n)
		timeRow := make(map[string]float64, n)
		for j, r := range routes {
			if rand.Float64() < *sparsity {
				continue
			}
			xDist := depotCoords[i][0] - routeCoords[j][0]
			yDist := depotCoords[i][1] - routeCoords[j][1]
			dist := math.Sqrt(math.Pow(xDist, 2) + math.Pow(yDist, 2))
			distRow[r.ID] = math.Round(dist*100) / 100
			timeRow[r.ID] = math.Round(dist / *speed * 60 * 100) / 100
		}
		distances[p.ID] = distRow
		times[p.ID] = timeRow
	}

	instName := fmt.Sprintf("%s_%d_%d_%d", *name, n, m, nr)
	return &depotassign.Instance{
		Name:      instName,
		Comment:   fmt.Sprintf("%s instance Nr. %d with %d routes, %d depots, capacity slack %.2f", *name, nr, n, m, *capSlack),
		Type:      "depot-assignment",
		Routes:    routes,
		Depots:    depots,
		Distances: distances,
		Times:     times,
	}
}
