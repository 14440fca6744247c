package notification

import "errors"

var (
	ErrEmptyRecipient = errors.New("recipient must not be empty")
	ErrInvalidType    = errors.New("invalid notification type")
	ErrInvalidChannel = errors.New("invalid notification channel")
	ErrInvalidStatus  = errors.New("invalid notification status")
)

type Type string

const (
	TypePaymentSucceeded Type = "payment_succeeded"
	TypeRefundSucceeded  Type = "refund_succeeded"
	TypeRefundRequested  Type = "refund_requested"
	TypeOrderCreated     Type = "order_created"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypePaymentSucceeded, TypeRefundSucceeded, TypeRefundRequested, TypeOrderCreated:
		return true
	default:
		return false
	}
}

func NewType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", ErrInvalidType
	}
	return t, nil
}

type Channel string

const (
	ChannelEmail Channel = "email"
)

func (c Channel) String() string {
	return string(c)
}

func (c Channel) IsValid() bool {
	return c == ChannelEmail
}

type Status string

const (
	StatusPending Status = "pending"
	StatusSending Status = "sending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusSending, StatusSent, StatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status closes the retry window.
func (s Status) IsTerminal() bool {
	return s == StatusSent
}
