package worker

import "time"

// Status represents the current state of the worker pool
type Status string

const (
	// StatusIdle indicates the pool is ready but not processing
	StatusIdle Status = "idle"

	// StatusProcessing indicates the pool is actively processing tasks
	StatusProcessing Status = "processing"

	// StatusShuttingDown indicates the queue is closed and the pool is
	// finishing its last tasks
	StatusShuttingDown Status = "shutting_down"

	// StatusStopped indicates the pool is not running
	StatusStopped Status = "stopped"
)

// Stats provides runtime statistics about the worker pool
type Stats struct {
	// ActiveWorkers is the number of workers currently processing tasks
	ActiveWorkers int `json:"activeWorkers" yaml:"activeWorkers"`

	// QueuedTasks is the number of tasks waiting to be processed
	QueuedTasks int `json:"queuedTasks" yaml:"queuedTasks"`

	// CompletedTasks is the number of tasks that have been processed
	CompletedTasks int `json:"completedTasks" yaml:"completedTasks"`

	// FailedTasks is the number of tasks that failed processing
	FailedTasks int `json:"failedTasks" yaml:"failedTasks"`

	// Status is the current state of the pool
	Status Status `json:"status" yaml:"status"`

	// Uptime is how long the pool has been running
	Uptime time.Duration `json:"uptime" yaml:"uptime"`
}
