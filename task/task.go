package task

import (
	"errors"
	"fmt"
)

const (
	Row Generation = iota
	Column
	Frame
)

// Generation selects how a frame is split into tasks: one task per row, per
// column, or the whole frame as a single task.
type Generation int

func (g Generation) String() string {
	return []string{
		"Row", "Column", "Frame",
	}[g]
}

// Task is a batch of coordinates checked out by one worker. The worker walks
// GetNextTask/AddResult until the batch is exhausted and returns the whole
// task; the coordinator keeps a copy so the batch can be requeued if the
// worker disappears.
type Task struct {
	CurrentTask   uint
	FrameNumber   uint
	ID            uint
	Results       []Pixel
	Tasks         []Coordinate
	WorkerAddress string
}

func NewTask(id uint, frameNumber uint) Task {
	return Task{
		ID:          id,
		FrameNumber: frameNumber,
	}
}

func (t *Task) String() string {
	output := "{Task "
	output += fmt.Sprintf("ID: %d ", t.ID)
	output += fmt.Sprintf("Frame Number: %d ", t.FrameNumber)
	output += fmt.Sprintf("Result Count: %d ", len(t.Results))
	output += fmt.Sprintf("Task Count: %d}", len(t.Tasks))
	return output
}

func (t *Task) AddTaskForPixel(coordinate Coordinate) {
	t.Tasks = append(t.Tasks, coordinate)
}

func (t *Task) AddTasksForRow(radius float64, frameRow uint, frameWidth uint) {
	var c uint
	for c = 0; c < frameWidth; c++ {
		t.AddTaskForPixel(Coordinate{
			Column: c,
			Radius: radius,
			Row:    frameRow,
		})
	}
}

func (t *Task) AddTasksForColumn(radius float64, frameHeight uint, frameColumn uint) {
	var r uint
	for r = 0; r < frameHeight; r++ {
		t.AddTaskForPixel(Coordinate{
			Column: frameColumn,
			Radius: radius,
			Row:    r,
		})
	}
}

func (t *Task) AddTasksForFrame(radius float64, frameHeight uint, frameWidth uint) {
	var r, c uint
	for r = 0; r < frameHeight; r++ {
		for c = 0; c < frameWidth; c++ {
			t.AddTaskForPixel(Coordinate{
				Column: c,
				Radius: radius,
				Row:    r,
			})
		}
	}
}

// GetNextTask
// Returns the current coordinate to be processed. Make sure to return the
// result to the AddResult method before calling this method again
func (t *Task) GetNextTask() (Coordinate, error) {
	if len(t.Results) >= len(t.Tasks) {
		return Coordinate{}, errors.New("no more tasks")
	}
	return t.Tasks[t.CurrentTask], nil
}

// AddResult
// When returning a result the CurrentTask value is incremented so the next
// call to the GetNextTask method will return the correct coordinate
func (t *Task) AddResult(pixel Pixel) {
	t.Results = append(t.Results, pixel)
	t.CurrentTask++
}
