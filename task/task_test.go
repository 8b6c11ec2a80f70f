package task

import (
	"image/color"
	"testing"
)

func TestAddTasksForRow(t *testing.T) {
	task := NewTask(7, 3)
	task.AddTasksForRow(0.5, 2, 4)

	if len(task.Tasks) != 4 {
		t.Fatalf("Expected 4 coordinates, got %d", len(task.Tasks))
	}
	for i, coordinate := range task.Tasks {
		if coordinate.Column != uint(i) {
			t.Errorf("Expected column %d, got %d", i, coordinate.Column)
		}
		if coordinate.Row != 2 {
			t.Errorf("Expected row 2, got %d", coordinate.Row)
		}
		if coordinate.Radius != 0.5 {
			t.Errorf("Expected radius 0.5, got %g", coordinate.Radius)
		}
	}
}

func TestAddTasksForColumn(t *testing.T) {
	task := NewTask(1, 0)
	task.AddTasksForColumn(2, 3, 5)

	if len(task.Tasks) != 3 {
		t.Fatalf("Expected 3 coordinates, got %d", len(task.Tasks))
	}
	for i, coordinate := range task.Tasks {
		if coordinate.Row != uint(i) {
			t.Errorf("Expected row %d, got %d", i, coordinate.Row)
		}
		if coordinate.Column != 5 {
			t.Errorf("Expected column 5, got %d", coordinate.Column)
		}
	}
}

func TestAddTasksForFrame(t *testing.T) {
	task := NewTask(0, 0)
	task.AddTasksForFrame(1, 2, 3)

	if len(task.Tasks) != 6 {
		t.Fatalf("Expected 6 coordinates, got %d", len(task.Tasks))
	}
	if first := task.Tasks[0]; first.Row != 0 || first.Column != 0 {
		t.Errorf("Expected the first coordinate at (0, 0), got (%d, %d)", first.Column, first.Row)
	}
	if last := task.Tasks[5]; last.Row != 1 || last.Column != 2 {
		t.Errorf("Expected the last coordinate at (2, 1), got (%d, %d)", last.Column, last.Row)
	}
}

func TestGetNextTaskAddResult(t *testing.T) {
	task := NewTask(0, 0)
	task.AddTasksForRow(2, 0, 3)

	var processed uint
	for {
		coordinate, err := task.GetNextTask()
		if err != nil {
			break
		}
		if coordinate.Column != processed {
			t.Errorf("Expected column %d, got %d", processed, coordinate.Column)
		}
		task.AddResult(Pixel{
			Color:  color.RGBA{R: 255, A: 255},
			Column: coordinate.Column,
			Row:    coordinate.Row,
		})
		processed++
	}

	if processed != 3 {
		t.Errorf("Expected to process 3 coordinates, got %d", processed)
	}
	if len(task.Results) != 3 {
		t.Errorf("Expected 3 results, got %d", len(task.Results))
	}
}

func TestGetNextTaskExhausted(t *testing.T) {
	task := NewTask(0, 0)

	if _, err := task.GetNextTask(); err == nil {
		t.Errorf("Expected an error on an empty task")
	}
}
