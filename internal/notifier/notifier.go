package notifier

import "context"

// Message is one formatted email handed off for delivery. Transport is out
// of process: messages are published to a topic a mailer drains.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type Notifier interface {
	Send(ctx context.Context, msg Message) error
}
