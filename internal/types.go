package internal

import "time"

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// OperationRecord is one invocation of a remote operation, as kept in the
// local history.
type OperationRecord struct {
	ID         string            `json:"id"`
	Operation  string            `json:"operation"`
	ProjectKey string            `json:"project_key"`
	Params     map[string]string `json:"params"`
	Status     string            `json:"status"`
	Detail     string            `json:"detail"`
	Timestamp  time.Time         `json:"timestamp"`
}
