package output

import (
	"bytes"
	"testing"

	"tasklist/internal/task"
	"tasklist/internal/testutil"
)

func TestFormatTaskList_Demo(t *testing.T) {
	var buf bytes.Buffer
	FormatTaskList(&buf, []task.Task{
		task.New("Walk the dog"),
		task.New("Do homework"),
		task.New("Cook dinner"),
	})

	testutil.Golden(t, "demo", buf.Bytes())
}

func TestFormatTaskList_Mixed(t *testing.T) {
	done := task.New("Do homework")
	done.Complete()

	var buf bytes.Buffer
	FormatTaskList(&buf, []task.Task{
		task.New("Walk the dog"),
		done,
		task.New(""),
	})

	testutil.Golden(t, "mixed", buf.Bytes())
}

func TestFormatTaskList_Empty(t *testing.T) {
	var buf bytes.Buffer
	FormatTaskList(&buf, nil)

	if buf.String() != "Task list:\n" {
		t.Errorf("expected header only, got %q", buf.String())
	}
}

func TestFormatTask_Completed(t *testing.T) {
	tk := task.New("Cook dinner")
	tk.Complete()

	var buf bytes.Buffer
	FormatTask(&buf, tk)

	expected := "- Cook dinner (Completed)\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatTask_EmptyDescription(t *testing.T) {
	var buf bytes.Buffer
	FormatTask(&buf, task.New(""))

	if buf.String() != "-  \n" {
		t.Errorf("expected %q, got %q", "-  \n", buf.String())
	}
}

func TestFormatTask_MultilineDescription(t *testing.T) {
	var buf bytes.Buffer
	FormatTask(&buf, task.New("first\r\nsecond"))

	expected := "- first  second \n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}
