package coordinator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"time"

	"deepbrot/mandelbrot"
	"deepbrot/misc"
	"deepbrot/task"

	"github.com/BrugadaSyndrome/bslogger"
)

type settings struct {
	logger bslogger.Logger

	GenerateMovie      bool
	MandelbrotSettings mandelbrot.Settings
	RunName            string
	SavePath           string
	ServerAddress      string
	TaskGeneration     task.Generation
	ZoomSettings       []zoomSettings
}

func NewSettings(settingsFile string) settings {
	s := settings{
		logger: bslogger.NewLogger("CoordinatorSettings", bslogger.Normal, nil),
	}
	fileBytes, err := misc.ReadFile(settingsFile)
	misc.CheckError(err, s.logger, misc.Fatal)
	misc.CheckError(json.Unmarshal(fileBytes, &s), s.logger, misc.Fatal)
	misc.CheckError(s.Verify(), s.logger, misc.Fatal)
	s.logger.Debug(s.String())
	return s
}

func (s *settings) String() string {
	output := "\nCoordinator settings\n"
	output += fmt.Sprintf("My Address: %s\n", s.ServerAddress)
	output += fmt.Sprintf("Run Name: %s\n", s.RunName)
	output += fmt.Sprintf("Zoom Legs: %d\n", len(s.ZoomSettings))
	return output
}

func (s *settings) Verify() error {
	misc.CheckError(s.MandelbrotSettings.Verify(), s.logger, misc.Fatal)
	if s.RunName == "" {
		s.RunName = "run_" + time.Now().Format("2006_01_02-03_04_05")
	}
	if s.SavePath == "" {
		s.SavePath, _ = os.Getwd()
	}
	if s.ServerAddress == "" {
		localAddress, err := misc.GetLocalAddress()
		misc.CheckError(err, s.logger, misc.Fatal)
		s.ServerAddress = fmt.Sprintf("%s:%s", localAddress, "51000")
	}
	if s.TaskGeneration < task.Row || s.TaskGeneration > task.Frame {
		s.TaskGeneration = task.Row
	}
	if len(s.ZoomSettings) == 0 {
		s.ZoomSettings = []zoomSettings{
			{
				RadiusStart: s.MandelbrotSettings.Radius,
				RadiusEnd:   s.MandelbrotSettings.Radius / 1024,
				RadiusStep:  2,
			},
		}
	}

	// Verify each of the zoom settings objects
	for i := 0; i < len(s.ZoomSettings); i++ {
		misc.CheckError(s.ZoomSettings[i].Verify(), s.logger, misc.Warning)
	}

	// If generate movie is set to true, verify ffmpeg is setup
	if s.GenerateMovie {
		cmd := exec.Command("ffmpeg")
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		misc.CheckError(cmd.Run(), s.logger, misc.Warning)
		if !bytes.Contains(stderr.Bytes(), []byte(`ffmpeg version`)) {
			s.GenerateMovie = false
			s.logger.Info("Ffmpeg is not installed. Disabling GenerateMovie.")
		}
	}

	return nil
}
