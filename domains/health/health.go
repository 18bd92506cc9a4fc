package health

import (
	"context"
	"time"
)

type Component string

const (
	ComponentCache    Component = "cache"
	ComponentDatabase Component = "database"
	ComponentSerp     Component = "serp"
	ComponentGenerate Component = "generation"
)

type Status string

const (
	StatusOk       Status = "OK"
	StatusDegraded Status = "DEGRADED"
	StatusError    Status = "ERROR"
)

type Record struct {
	Component Component `json:"component"`
	Status    Status    `json:"status"`
	Message   string    `json:"message,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

type IHealthUsecase interface {
	Check(ctx context.Context) []Record
}
