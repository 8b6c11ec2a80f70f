// Package worker is the cheap half of the perturbation split: it fetches the
// coordinator's reference orbit once, then iterates float64 deltas for every
// coordinate it is handed.
package worker

import (
	"fmt"
	"time"

	"deepbrot/mandelbrot"
	"deepbrot/misc"
	"deepbrot/rpc"
	"deepbrot/task"

	"github.com/BrugadaSyndrome/bslogger"
)

type Worker struct {
	coordinatorAddress string
	done               chan struct{}
	logger             bslogger.Logger
	myAddress          string
	orbit              mandelbrot.Orbit
	palette            mandelbrot.Palette
	renderSettings     mandelbrot.Settings
	tasksCompleted     int

	ServerClient rpc.TcpServerClient
}

func NewWorker(settingsFile string) *Worker {
	settings := NewSettings(settingsFile)
	worker := Worker{
		coordinatorAddress: settings.CoordinatorAddress,
		done:               make(chan struct{}),
		logger:             bslogger.NewLogger("Worker", bslogger.Normal, nil),
	}

	// Find a free port to use for this worker
	port, err := misc.GetFreePort()
	misc.CheckError(err, worker.logger, misc.Fatal)
	worker.logger.Debugf("Found free port: %d", port)
	localAddress, err := misc.GetLocalAddress()
	misc.CheckError(err, worker.logger, misc.Fatal)
	worker.myAddress = fmt.Sprintf("%s:%d", localAddress, port)
	worker.logger = bslogger.NewLogger(fmt.Sprintf("Worker %s", worker.myAddress), bslogger.Normal, nil)
	worker.ServerClient = rpc.NewTcpServerClient(&worker, worker.myAddress, worker.myAddress, settings.CoordinatorAddress, settings.CoordinatorAddress)
	misc.CheckError(worker.ServerClient.Server.Run(), worker.logger, misc.Fatal)

	// Register with the coordinator
	misc.CheckError(worker.ServerClient.Client.Connect(), worker.logger, misc.Fatal)
	var nothing misc.Nothing
	misc.CheckError(worker.ServerClient.Client.Call("Coordinator.RegisterWorker", worker.myAddress, &nothing), worker.logger, misc.Fatal)

	// Get the render settings and the shared reference orbit from the coordinator
	misc.CheckError(worker.ServerClient.Client.Call("Coordinator.GetMandelbrotSettings", nothing, &worker.renderSettings), worker.logger, misc.Fatal)
	misc.CheckError(worker.ServerClient.Client.Call("Coordinator.GetOrbit", nothing, &worker.orbit), worker.logger, misc.Fatal)
	worker.logger.Infof("Got render settings and an orbit of length %d from the coordinator", len(worker.orbit))
	worker.palette = mandelbrot.NewPalette(worker.renderSettings.PaletteAnchors)

	go worker.tickers()
	go worker.processTasks()

	return &worker
}

// Wait blocks until the worker has drained the coordinator's task pool and
// deregistered.
func (w *Worker) Wait() {
	<-w.done
}

func (w *Worker) tickers() {
	rollCall := time.NewTicker(time.Minute)
	heartBeat := time.NewTicker(30 * time.Second)

	for {
		select {
		case <-w.done:
			rollCall.Stop()
			heartBeat.Stop()
			return

		case <-rollCall.C:
			w.logger.Debug("Roll call ticker")
			var junk misc.Nothing
			var reply bool
			err := w.ServerClient.Client.Call("Coordinator.RollCall", junk, &reply)
			if err != nil {
				// Cannot communicate with the Coordinator so we should shut down
				w.logger.Warningf("Coordinator missed roll call: %s", err)
				w.ServerClient.Client.Disconnect()
				w.ServerClient.Server.Stop()
				continue
			}

		case <-heartBeat.C:
			w.logger.Debug("Heart beat ticker")
			w.logger.Infof("Tasks [Completed: %d]", w.tasksCompleted)
		}
	}
}

func (w *Worker) processTasks() {
	w.logger.Info("Processing tasks")

	var nothing misc.Nothing
	var startTime = time.Now()

	for {
		var taskTodo task.Task

		err := w.ServerClient.Client.Call("Coordinator.GetTask", w.myAddress, &taskTodo)
		if err != nil {
			// This is an expected error. No more work to do
			if err.Error() == "all tasks handed out" {
				break
			}
			w.logger.Fatalf("Unable to get a task: %s", err.Error())
		}

		// Process each coordinate given
		for {
			coordinate, err := taskTodo.GetNextTask()
			if err != nil {
				break
			}
			taskTodo.AddResult(w.renderPixel(coordinate))
		}

		err = w.ServerClient.Client.Call("Coordinator.ReturnTask", taskTodo, &nothing)
		if err != nil {
			w.logger.Errorf("Unable to return a task: %s", err.Error())
			break
		}
		w.tasksCompleted++
	}

	w.logger.Info("Done processing tasks")
	w.logger.Debugf("Processed %d tasks in %s", w.tasksCompleted, time.Since(startTime))

	w.logger.Info("Shutting down")
	w.ServerClient.Client.Call("Coordinator.DeRegisterWorker", w.myAddress, &nothing)
	misc.CheckError(w.ServerClient.Client.Disconnect(), w.logger, misc.Warning)
	misc.CheckError(w.ServerClient.Server.Stop(), w.logger, misc.Warning)
	close(w.done)
}

// renderPixel runs the perturbation iteration for one coordinate against the
// shared orbit and maps the result through the palette.
func (w *Worker) renderPixel(coordinate task.Coordinate) task.Pixel {
	delta0 := mandelbrot.PixelOffset(
		int(coordinate.Column), int(coordinate.Row),
		w.renderSettings.Width, w.renderSettings.Height,
		coordinate.Radius,
	)
	iterations, magnitudeSq := w.orbit.Iterate(delta0)

	return task.Pixel{
		Color:  w.palette.Color(iterations, magnitudeSq, len(w.orbit)),
		Column: coordinate.Column,
		Row:    coordinate.Row,
	}
}

func (w *Worker) RollCall(request misc.Nothing, reply *bool) error {
	*reply = true
	return nil
}
