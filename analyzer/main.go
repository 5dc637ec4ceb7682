package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"git.solver4all.com/azaryc2s/depotassign"
)

func main() {
	if len(os.Args) < 2 {
		log.Printf("No arguments passed!")
		return
	}
	dirName := os.Args[1]
	dir, err := os.ReadDir(dirName)
	if err != nil {
		log.Printf("Couldn't open directory %s: %s\n", os.Args[1], err.Error())
		return
	}
	fmt.Printf("Name,Status,Time,Objective,Mode,Solver,Routes,Depots,TotalBuses,OverflowBuses,ViablePairs,Comment\n")
	for _, f := range dir {
		fileName := dirName + "/" + f.Name()
		if !strings.Contains(fileName, ".json") {
			continue
		}
		inst, err := depotassign.LoadInstance(fileName)
		if err != nil {
			log.Printf("Couldn't read %s: %s\n", f.Name(), err.Error())
			return
		}
		if inst.Solution == nil {
			fmt.Printf("No solution for %s\n", inst.Name)
			continue
		}
		sol := inst.Solution
		fmt.Printf("%s,%s,%s,%.2f,%s,%s,%d,%d,%d,%d,%d,%s\n",
			inst.Name, sol.Status, sol.Time, sol.Objective, sol.Mode, sol.Solver,
			sol.RouteCount, sol.DepotCount, sol.TotalBuses, sol.OverflowBuses, sol.ViablePairs, sol.Comment)
	}
}
