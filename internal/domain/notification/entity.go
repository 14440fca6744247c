package notification

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Job is a durable notification delivery job. It is persisted in pending
// status and driven through sending/sent/failed by the dispatch worker.
type Job struct {
	id            uuid.UUID
	kind          Type
	channel       Channel
	recipient     string
	orderID       *uuid.UUID
	status        Status
	attempts      int32
	nextAttemptAt time.Time
	lastError     *string
	createdAt     time.Time
	sentAt        *time.Time
	payload       []byte
}

// NewJob builds a pending job due immediately. Variables are serialized
// best-effort: a marshal failure leaves the payload nil, it never blocks
// enqueueing.
func NewJob(kind Type, channel Channel, recipient string, orderID *uuid.UUID, variables map[string]any, now time.Time) (*Job, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidType
	}
	if channel == "" {
		channel = ChannelEmail
	}
	if !channel.IsValid() {
		return nil, ErrInvalidChannel
	}
	if strings.TrimSpace(recipient) == "" {
		return nil, ErrEmptyRecipient
	}

	return &Job{
		id:            uuid.New(),
		kind:          kind,
		channel:       channel,
		recipient:     recipient,
		orderID:       orderID,
		status:        StatusPending,
		attempts:      0,
		nextAttemptAt: now,
		createdAt:     now,
		payload:       marshalVariables(variables),
	}, nil
}

func (j *Job) ID() uuid.UUID            { return j.id }
func (j *Job) Kind() Type               { return j.kind }
func (j *Job) Channel() Channel         { return j.channel }
func (j *Job) Recipient() string        { return j.recipient }
func (j *Job) OrderID() *uuid.UUID      { return j.orderID }
func (j *Job) Status() Status           { return j.status }
func (j *Job) Attempts() int32          { return j.attempts }
func (j *Job) NextAttemptAt() time.Time { return j.nextAttemptAt }
func (j *Job) LastError() *string       { return j.lastError }
func (j *Job) CreatedAt() time.Time     { return j.createdAt }
func (j *Job) SentAt() *time.Time       { return j.sentAt }
func (j *Job) Payload() []byte          { return j.payload }

func marshalVariables(variables map[string]any) []byte {
	if len(variables) == 0 {
		return nil
	}
	data, err := json.Marshal(variables)
	if err != nil {
		return nil
	}
	return data
}

// ClaimedJob is the immutable snapshot handed out of the claim
// transaction. The dispatch step works on this copy only, never on a
// live row handle, so a slow send cannot leak partial writes across
// transaction boundaries.
type ClaimedJob struct {
	ID        uuid.UUID
	Kind      Type
	Channel   Channel
	Recipient string
	OrderID   *uuid.UUID
	Attempts  int32
	Payload   []byte
	CreatedAt time.Time
}
