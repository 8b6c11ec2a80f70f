// Package coordinator drives a distributed zoom-sequence render. The
// expensive arbitrary-precision reference orbit is computed exactly once
// here; workers fetch it at registration and then burn through row tasks of
// cheap perturbation iterations, frame by frame, while the radius shrinks.
package coordinator

import (
	"encoding/json"
	"errors"
	"fmt"
	gimage "image"
	"image/jpeg"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"deepbrot/mandelbrot"
	"deepbrot/misc"
	"deepbrot/rpc"
	"deepbrot/task"
	"deepbrot/view"

	"github.com/BrugadaSyndrome/bslogger"
)

type Coordinator struct {
	clients             map[string]*rpc.TcpClient
	done                chan struct{}
	frames              map[int]frameTask
	frameCompletedCount uint
	frameCount          uint
	logger              bslogger.Logger
	mutex               sync.Mutex
	orbit               mandelbrot.Orbit
	pixelCount          uint
	rectangle           gimage.Rectangle
	settings            settings
	taskCount           uint
	taskGeneratedCount  uint
	taskIngestedCount   uint
	tasksHandedOut      map[string]map[uint]task.Task // keep track of all tasks workers have
	tasksDone           chan task.Task
	tasksTodo           chan task.Task
	todoClosed          bool
	workerWait          *sync.WaitGroup

	Server rpc.TcpServer
}

type frameTask struct {
	Image      *gimage.RGBA
	PixelsLeft uint
}

func NewCoordinator(settingsFile string) *Coordinator {
	settings := NewSettings(settingsFile)

	coordinator := &Coordinator{
		clients:    make(map[string]*rpc.TcpClient),
		done:       make(chan struct{}),
		frames:     make(map[int]frameTask),
		logger:     bslogger.NewLogger("Coordinator", bslogger.Normal, nil),
		pixelCount: uint(settings.MandelbrotSettings.Height * settings.MandelbrotSettings.Width),
		rectangle: gimage.Rectangle{
			Min: gimage.Point{
				X: 0,
				Y: 0,
			},
			Max: gimage.Point{
				X: settings.MandelbrotSettings.Width,
				Y: settings.MandelbrotSettings.Height,
			},
		},
		settings:       settings,
		tasksHandedOut: make(map[string]map[uint]task.Task),
		tasksDone:      make(chan task.Task, 1000),
		tasksTodo:      make(chan task.Task, 1000),
		workerWait:     &sync.WaitGroup{},
	}

	// The one arbitrary-precision computation of the whole run. Every worker
	// iterates against this orbit, so it must exist before any task is
	// handed out.
	centerReal, err := view.ParseCoordinate(settings.MandelbrotSettings.CenterReal)
	misc.CheckError(err, coordinator.logger, misc.Fatal)
	centerImag, err := view.ParseCoordinate(settings.MandelbrotSettings.CenterImag)
	misc.CheckError(err, coordinator.logger, misc.Fatal)
	startTime := time.Now()
	coordinator.orbit = mandelbrot.NewOrbit(centerReal, centerImag, settings.MandelbrotSettings.Depth)
	coordinator.logger.Infof("Computed reference orbit of length %d in %s", len(coordinator.orbit), time.Since(startTime))
	if len(coordinator.orbit) < settings.MandelbrotSettings.Depth {
		coordinator.logger.Warningf("Reference point escaped after %d iterations; pixel depth is capped there", len(coordinator.orbit))
	}

	for i := 0; i < len(settings.ZoomSettings); i++ {
		frameCount := settings.ZoomSettings[i].frameCount()
		coordinator.frameCount += frameCount
		settings.ZoomSettings[i].FrameCount = frameCount
	}

	// Determine the number of tasks that will be generated so the coordinator knows when to shut down
	switch settings.TaskGeneration {
	case task.Row:
		coordinator.taskCount = uint(settings.MandelbrotSettings.Height) * coordinator.frameCount
	case task.Column:
		coordinator.taskCount = uint(settings.MandelbrotSettings.Width) * coordinator.frameCount
	case task.Frame:
		coordinator.taskCount = coordinator.frameCount
	default:
		coordinator.logger.Fatalf("Unknown generation type: %d", settings.TaskGeneration)
	}

	// Start up the rpc tcp server to allow workers to communicate with the coordinator
	coordinator.Server = rpc.NewTcpServer(coordinator, settings.ServerAddress, "CoordinatorServer")
	misc.CheckError(coordinator.Server.Run(), coordinator.Server.Logger, misc.Fatal)

	// Create directory to store files for this run
	runPath := filepath.Join(settings.SavePath, settings.RunName)
	if _, err := os.Stat(runPath); os.IsNotExist(err) {
		if err = os.Mkdir(runPath, os.ModePerm); err != nil {
			coordinator.logger.Fatalf("Unable to create folder: %s", err)
		}
	}

	// Copy the settings to the directory so the run can be duplicated in the future
	settingsBytes, err := json.Marshal(settings)
	misc.CheckError(err, coordinator.logger, misc.Warning)
	bytesWritten, err := misc.WriteFile(filepath.Join(runPath, filepath.Base(settingsFile)), settingsBytes)
	if err != nil || bytesWritten == 0 {
		coordinator.logger.Fatalf("Unable to make a backup copy of settingsFile: %s", settingsFile)
	}

	// Create a log file to record the run
	logFile, err := os.Create(filepath.Join(runPath, "coordinator.log"))
	misc.CheckError(err, coordinator.logger, misc.Warning)
	coordinator.logger = bslogger.NewLogger("Coordinator", bslogger.Normal, logFile)

	go coordinator.tickers()
	go coordinator.generateTasks()
	go coordinator.ingestTasks()

	return coordinator
}

// Wait blocks until every frame of the run has been ingested and saved.
func (c *Coordinator) Wait() {
	<-c.done
}

func (c *Coordinator) tickers() {
	rollCall := time.NewTicker(time.Minute)
	heartBeat := time.NewTicker(30 * time.Second)

	for {
		select {
		case <-c.done:
			rollCall.Stop()
			heartBeat.Stop()
			return

		case <-rollCall.C:
			c.logger.Debug("Roll call ticker")

			// Workers register and deregister from rpc goroutines, so the
			// map cannot be ranged directly
			c.mutex.Lock()
			clients := make([]*rpc.TcpClient, 0, len(c.clients))
			for _, v := range c.clients {
				clients = append(clients, v)
			}
			c.mutex.Unlock()

			var junk misc.Nothing
			for _, v := range clients {
				var reply bool
				err := v.Call("Worker.RollCall", junk, &reply)
				if err != nil {
					// Cannot communicate with the worker
					c.logger.Warningf("Worker %s missed roll call: %s", v.Name, err)
					misc.CheckError(v.Disconnect(), c.logger, misc.Warning)

					// Remove worker from pool
					var nothing misc.Nothing
					misc.CheckError(c.DeRegisterWorker(v.Name, &nothing), c.logger, misc.Warning)
				}
			}

		case <-heartBeat.C:
			c.logger.Debug("Heart beat ticker")
			c.logger.Infof("Tasks [Generated: %d] [Ingested: %d] | Frames [Completed: %d] [WIP: %d] [Todo: %d]", c.taskGeneratedCount, c.taskIngestedCount, c.frameCompletedCount, len(c.frames), c.frameCount-c.frameCompletedCount)
		}
	}
}

func (c *Coordinator) generateTasks() {
	c.logger.Info("Generating tasks")

	var frameNumber uint = 1
	var startTime = time.Now()

	for leg := 0; leg < len(c.settings.ZoomSettings); leg++ {

		// Generate each frame for this leg while the radius shrinks (or
		// grows) exponentially
		zoom := c.settings.ZoomSettings[leg]
		radius := zoom.RadiusStart

		var currentFrame uint
		for currentFrame = 1; currentFrame <= zoom.FrameCount; currentFrame++ {

			switch c.settings.TaskGeneration {
			case task.Row:
				var row uint
				for row = 0; row < uint(c.settings.MandelbrotSettings.Height); row++ {
					taskTodo := task.NewTask(c.taskGeneratedCount, frameNumber)
					taskTodo.AddTasksForRow(radius, row, uint(c.settings.MandelbrotSettings.Width))
					c.tasksTodo <- taskTodo
					c.taskGeneratedCount++
				}
			case task.Column:
				var column uint
				for column = 0; column < uint(c.settings.MandelbrotSettings.Width); column++ {
					taskTodo := task.NewTask(c.taskGeneratedCount, frameNumber)
					taskTodo.AddTasksForColumn(radius, uint(c.settings.MandelbrotSettings.Height), column)
					c.tasksTodo <- taskTodo
					c.taskGeneratedCount++
				}
			case task.Frame:
				taskTodo := task.NewTask(c.taskGeneratedCount, frameNumber)
				taskTodo.AddTasksForFrame(radius, uint(c.settings.MandelbrotSettings.Height), uint(c.settings.MandelbrotSettings.Width))
				c.tasksTodo <- taskTodo
				c.taskGeneratedCount++
			default:
				c.logger.Fatalf("Unknown generation type: %d", c.settings.TaskGeneration)
			}

			if zoom.RadiusStart > zoom.RadiusEnd {
				radius /= zoom.RadiusStep
			} else {
				radius *= zoom.RadiusStep
			}
			frameNumber++
		}
	}

	c.mutex.Lock()
	c.todoClosed = true
	close(c.tasksTodo)
	c.mutex.Unlock()

	c.logger.Debugf("Done generating %d tasks in %s", c.taskGeneratedCount, time.Since(startTime))
}

func (c *Coordinator) ingestTasks() {
	c.logger.Info("Ingesting tasks")

	var startTime = time.Now()

	for c.taskIngestedCount != c.taskCount {
		// Get the next task to work on
		taskReceived := <-c.tasksDone
		c.taskIngestedCount++

		for r := 0; r < len(taskReceived.Results); r++ {
			frame, ok := c.frames[int(taskReceived.FrameNumber)]
			if !ok {
				// Need to create a frame to save the incoming pixels
				frame = frameTask{
					Image:      gimage.NewRGBA(c.rectangle),
					PixelsLeft: c.pixelCount,
				}
			}

			// Record the pixel on the frame and decrement the amount of pixels left to be recorded
			result := taskReceived.Results[r]
			frame.Image.SetRGBA(int(result.Column), int(result.Row), result.Color)
			frame.PixelsLeft--
			c.frames[int(taskReceived.FrameNumber)] = frame
			c.mutex.Lock()
			delete(c.tasksHandedOut[taskReceived.WorkerAddress], taskReceived.ID)
			c.mutex.Unlock()

			// All pixels have been recorded so save the frame
			if frame.PixelsLeft == 0 {
				path := filepath.Join(c.settings.SavePath, c.settings.RunName, fmt.Sprintf("%d.jpg", taskReceived.FrameNumber))
				f, err := os.Create(path)
				if err != nil {
					c.logger.Fatalf("Unable to create frame: %s", err)
				}
				err = jpeg.Encode(f, frame.Image, nil)
				if err != nil {
					c.logger.Fatalf("Unable to save frame: %s", err)
				}
				misc.CheckError(f.Close(), c.logger, misc.Warning)
				c.logger.Infof("Saved frame to %s", path)

				// Remove the frame to conserve memory
				delete(c.frames, int(taskReceived.FrameNumber))
				c.frameCompletedCount++
			}
		}
	}

	close(c.tasksDone)
	c.logger.Debugf("Done ingesting %d tasks in %s", c.taskIngestedCount, time.Since(startTime))

	if c.settings.GenerateMovie {
		c.generateMovie()
	}

	c.logger.Infof("Waiting for %d workers to disconnect", len(c.clients))
	c.workerWait.Wait()
	misc.CheckError(c.Server.Stop(), c.logger, misc.Warning)
	close(c.done)
}

// generateMovie stitches the numbered frames of the run into a movie.
// Settings.Verify already confirmed ffmpeg is available.
func (c *Coordinator) generateMovie() {
	runPath := filepath.Join(c.settings.SavePath, c.settings.RunName)
	moviePath := filepath.Join(runPath, c.settings.RunName+".mp4")

	c.logger.Infof("Generating movie from %d frames", c.frameCompletedCount)
	startTime := time.Now()
	cmd := exec.Command("ffmpeg",
		"-framerate", "30",
		"-start_number", "1",
		"-i", filepath.Join(runPath, "%d.jpg"),
		"-pix_fmt", "yuv420p",
		moviePath,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		c.logger.Errorf("Unable to generate movie: %s\n%s", err, output)
		return
	}
	c.logger.Infof("Saved movie to %s in %s", moviePath, time.Since(startTime))
}

func (c *Coordinator) RegisterWorker(workerServerAddress string, reply *misc.Nothing) error {
	// Create a client to communicate with this worker
	client := rpc.NewTcpClient(workerServerAddress, workerServerAddress)
	misc.CheckError(client.Connect(), c.logger, misc.Warning)

	c.mutex.Lock()
	c.clients[workerServerAddress] = &client
	// Track all tasks this worker checks out
	c.tasksHandedOut[workerServerAddress] = make(map[uint]task.Task)
	c.mutex.Unlock()

	c.logger.Infof("Worker joined: %s", workerServerAddress)
	c.workerWait.Add(1)

	return nil
}

func (c *Coordinator) DeRegisterWorker(workerServerAddress string, reply *misc.Nothing) error {
	// Detach the worker's stored values in one critical section; once they
	// are out of the maps no other goroutine can reach them
	c.mutex.Lock()
	todoClosed := c.todoClosed
	unreturned := c.tasksHandedOut[workerServerAddress]
	client := c.clients[workerServerAddress]
	delete(c.tasksHandedOut, workerServerAddress)
	delete(c.clients, workerServerAddress)
	c.mutex.Unlock()

	// Put tasks this worker has not returned yet back into the tasksTodo
	// pool. Once generation has closed the pool they cannot be requeued.
	if !todoClosed {
		go func(tasks map[uint]task.Task) {
			for _, v := range tasks {
				c.tasksTodo <- v
			}
		}(unreturned)
	} else if len(unreturned) > 0 {
		c.logger.Warningf("Worker %s left with %d unreturned tasks after generation finished", workerServerAddress, len(unreturned))
	}

	// Disconnect from worker
	if client != nil {
		misc.CheckError(client.Disconnect(), c.logger, misc.Warning)
	}

	c.logger.Infof("Worker left: %s", workerServerAddress)
	c.workerWait.Done()

	return nil
}

func (c *Coordinator) RollCall(nothing misc.Nothing, present *bool) error {
	*present = true
	return nil
}

func (c *Coordinator) GetTask(workerAddress string, reply *task.Task) error {
	todo, more := <-c.tasksTodo
	if !more {
		c.logger.Info("Telling worker that all tasks are handed out")
		return errors.New("all tasks handed out")
	}
	c.mutex.Lock()
	todo.WorkerAddress = workerAddress
	c.tasksHandedOut[workerAddress][todo.ID] = todo
	c.mutex.Unlock()
	*reply = todo
	return nil
}

func (c *Coordinator) ReturnTask(done task.Task, nothing *misc.Nothing) error {
	c.tasksDone <- done
	return nil
}

func (c *Coordinator) GetMandelbrotSettings(nothing misc.Nothing, settings *mandelbrot.Settings) error {
	*settings = c.settings.MandelbrotSettings
	return nil
}

// GetOrbit hands a worker the shared reference orbit. Large but transferred
// once per worker, at registration.
func (c *Coordinator) GetOrbit(nothing misc.Nothing, orbit *mandelbrot.Orbit) error {
	*orbit = c.orbit
	return nil
}
