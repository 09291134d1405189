package repository

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusCreated    TaskStatus = "CREATED"
	TaskStatusProcessing TaskStatus = "PROCESSING"
	TaskStatusFailed     TaskStatus = "FAILED"
	TaskStatusDone       TaskStatus = "DONE"
)

type OutboxTask struct {
	ID          uuid.UUID       `db:"id"`
	Status      TaskStatus      `db:"status"`
	Payload     json.RawMessage `db:"payload"`
	Topic       string          `db:"topic"`
	Attempts    int             `db:"attempts"`
	LastError   *string         `db:"last_error"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
	CompletedAt *time.Time      `db:"completed_at"`
}

// PackageEventPayload is what lands on the package event topic for every
// lifecycle change recorded at the desk.
type PackageEventPayload struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	PackageID string    `json:"package_id"`
	Building  string    `json:"building,omitempty"`
	Room      string    `json:"room,omitempty"`
	Tracking  string    `json:"tracking,omitempty"`
	Receiver  string    `json:"receiver,omitempty"`
}
