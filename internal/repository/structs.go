package repository

import (
	"errors"
	"time"
)

var ErrObjectNotFound = errors.New("not found")

type PackageRecord struct {
	ID         string     `db:"id"`
	Building   string     `db:"building"`
	Room       string     `db:"room"`
	Tracking   string     `db:"tracking"`
	Carrier    string     `db:"carrier"`
	Type       string     `db:"type"`
	Sender     string     `db:"sender"`
	Image      string     `db:"image"`
	Status     string     `db:"status"`
	Receiver   string     `db:"receiver"`
	Signature  string     `db:"signature"`
	CreatedAt  time.Time  `db:"created_at"`
	PickedUpAt *time.Time `db:"picked_up_at"`
}

// ConfigDocument is the singleton settings row. The taxonomy lists live inside
// one JSON payload so every edit is a whole-document replace, never a patch.
type ConfigDocument struct {
	ID        int       `db:"id"`
	Payload   []byte    `db:"payload"`
	UpdatedAt time.Time `db:"updated_at"`
}
