package notification

import (
	"fmt"
	"strings"
	"time"
)

// Message is the rendered email content for a claimed job.
type Message struct {
	Subject string
	Body    string
}

// Render builds the message deterministically from the job's type, order
// reference and payload.
func Render(job ClaimedJob, now time.Time) Message {
	return Message{
		Subject: subjectOf(job.Kind),
		Body:    bodyOf(job, now),
	}
}

func subjectOf(kind Type) string {
	switch kind {
	case TypePaymentSucceeded:
		return "Payment received"
	case TypeRefundSucceeded:
		return "Refund processed"
	case TypeRefundRequested:
		return "Refund requested"
	case TypeOrderCreated:
		return "Order received"
	default:
		return "Notification"
	}
}

func bodyOf(job ClaimedJob, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Notification type: %s\n", job.Kind)
	if job.OrderID != nil {
		fmt.Fprintf(&b, "OrderId: %s\n", job.OrderID)
	}
	fmt.Fprintf(&b, "Time: %s", now.Format(time.RFC3339))
	if len(job.Payload) > 0 {
		fmt.Fprintf(&b, "\nPayload: %s", job.Payload)
	}
	return b.String()
}
