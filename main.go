package main

import (
	"flag"

	"deepbrot/coordinator"
	"deepbrot/worker"

	"github.com/BrugadaSyndrome/bslogger"
)

var (
	centerImag, centerReal                           string
	coordinatorSettingsFile, workerSettingsFile      string
	depth, height, renderWorkers, width, workerCount int
	isCoordinator, isWorker                          bool
	radius                                           float64
)

func parseArguments() {
	// Viewer values
	flag.StringVar(&centerReal, "centerReal", "0", "Real part of the view center, as a decimal string")
	flag.StringVar(&centerImag, "centerImag", "0", "Imaginary part of the view center, as a decimal string")
	flag.IntVar(&depth, "depth", 1000, "Maximum reference orbit length")
	flag.IntVar(&height, "height", 768, "Height of the viewer window")
	flag.Float64Var(&radius, "radius", 2.0, "Half-width of the viewport in the complex plane")
	flag.IntVar(&renderWorkers, "renderWorkers", 0, "Render goroutines per frame (0 = one per CPU)")
	flag.IntVar(&width, "width", 1024, "Width of the viewer window")

	// Coordinator values
	flag.BoolVar(&isCoordinator, "isCoordinator", false, "Run as a zoom sequence coordinator")
	flag.StringVar(&coordinatorSettingsFile, "coordinatorSettings", "coordinator.json", "Json file with coordinator settings")

	// Worker values
	flag.BoolVar(&isWorker, "isWorker", false, "Run as a render farm worker")
	flag.StringVar(&workerSettingsFile, "workerSettings", "worker.json", "Json file with worker settings")
	flag.IntVar(&workerCount, "workerCount", 2, "Number of workers to create")

	flag.Parse()
}

func main() {
	parseArguments()

	switch {
	case isCoordinator:
		runCoordinator()
	case isWorker:
		runWorkers()
	default:
		runViewer()
	}
}

func runCoordinator() {
	c := coordinator.NewCoordinator(coordinatorSettingsFile)
	c.Wait()
}

func runWorkers() {
	logger := bslogger.NewLogger("Main", bslogger.Normal, nil)
	if workerCount < 1 {
		workerCount = 1
	}
	logger.Infof("Starting %d workers", workerCount)

	workers := make([]*worker.Worker, 0, workerCount)
	for i := 0; i < workerCount; i++ {
		workers = append(workers, worker.NewWorker(workerSettingsFile))
	}
	for _, w := range workers {
		w.Wait()
	}
}
