package tasks

import "fmt"

// TaskType identifies the kind of training job the artifacts are fetched for.
type TaskType string

const (
	ImageTask        TaskType = "ImageTask"
	InstructTextTask TaskType = "InstructTextTask"
	DpoTask          TaskType = "DpoTask"
	GrpoTask         TaskType = "GrpoTask"
	ChatTask         TaskType = "ChatTask"
)

func ParseTaskType(s string) (TaskType, error) {
	switch TaskType(s) {
	case ImageTask, InstructTextTask, DpoTask, GrpoTask, ChatTask:
		return TaskType(s), nil
	default:
		return "", fmt.Errorf("unknown task type %q", s)
	}
}

// FileFormat describes where a text dataset comes from. CSV and JSON are
// expected to be staged locally before the downloader runs.
type FileFormat string

const (
	CSV         FileFormat = "csv"
	JSON        FileFormat = "json"
	HuggingFace FileFormat = "hf"
	S3          FileFormat = "s3"
)

func ParseFileFormat(s string) (FileFormat, error) {
	switch FileFormat(s) {
	case CSV, JSON, HuggingFace, S3:
		return FileFormat(s), nil
	default:
		return "", fmt.Errorf("unknown file format %q", s)
	}
}

// TaskSpec is the full description of one downloader run. It is constructed
// once from process input and read-only afterwards.
type TaskSpec struct {
	TaskID    string
	ModelID   string
	Type      TaskType
	DatasetID string
	Format    FileFormat
}
