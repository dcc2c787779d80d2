package monitor

import "time"

type Status struct {
	PostgreSQL bool      `json:"postgresql"`
	Redis      bool      `json:"redis"`
	Queue      bool      `json:"queue"`
	QueueSize  int       `json:"queue_size"`
	LastCheck  time.Time `json:"last_check"`
}
