package ports

import (
	"context"
	"errors"
	"time"

	"homestead/internal/domain/homestead"
)

// Repositories translate their storage errors to these.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// TxManager runs fn with a ctx that every repository call inside must use.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type FarmState struct {
	FarmID    string             `json:"farm_id"`
	Snapshot  homestead.Snapshot `json:"snapshot"`
	Version   int64              `json:"version"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type EventRecord struct {
	FarmID     string         `json:"farm_id"`
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

type ActionResult struct {
	ResultCode string         `json:"result_code"`
	Action     string         `json:"action"`
	Messages   []string       `json:"messages"`
	Events     []EventRecord  `json:"events"`
	View       homestead.View `json:"view"`
}

type ActionExecutionRecord struct {
	FarmID         string       `json:"farm_id"`
	IdempotencyKey string       `json:"idempotency_key"`
	IntentType     string       `json:"intent_type"`
	Result         ActionResult `json:"result"`
	AppliedAt      time.Time    `json:"applied_at"`
}

type FarmStateRepository interface {
	GetByFarmID(ctx context.Context, farmID string) (FarmState, error)
	// SaveWithVersion stores state as version expectedVersion+1; expectedVersion
	// zero creates the farm. A mismatch returns ErrConflict.
	SaveWithVersion(ctx context.Context, state FarmState, expectedVersion int64) error
}

type ActionExecutionRepository interface {
	GetByIdempotencyKey(ctx context.Context, farmID, key string) (*ActionExecutionRecord, error)
	SaveExecution(ctx context.Context, execution ActionExecutionRecord) error
}

type EventRepository interface {
	Append(ctx context.Context, farmID string, events []EventRecord) error
	// ListByFarmID returns the newest limit events, oldest first.
	ListByFarmID(ctx context.Context, farmID string, limit int) ([]EventRecord, error)
}

type FarmCredentialRecord struct {
	FarmID    string
	KeySalt   []byte
	KeyHash   []byte
	Status    string
	CreatedAt time.Time
}

type FarmCredentialRepository interface {
	Create(ctx context.Context, credential FarmCredentialRecord) error
	GetByFarmID(ctx context.Context, farmID string) (FarmCredentialRecord, error)
}

type GuideProvider interface {
	Index(ctx context.Context) ([]byte, error)
	File(ctx context.Context, path string) ([]byte, error)
}
