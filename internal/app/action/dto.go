package action

import (
	"homestead/internal/app/ports"
	"homestead/internal/domain/homestead"
)

const (
	ResultOK       = "OK"
	ResultRejected = "REJECTED"
)

type Request struct {
	FarmID         string
	IdempotencyKey string
	Intent         homestead.Intent
}

type Response struct {
	ResultCode string              `json:"result_code"`
	Action     string              `json:"action"`
	SettledMS  int64               `json:"settled_ms"`
	Messages   []string            `json:"messages"`
	Events     []ports.EventRecord `json:"events"`
	View       homestead.View      `json:"view"`
}
