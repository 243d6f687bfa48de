package messaging

import "context"

type ChangeTopic string

const (
	TrackingTopic ChangeTopic = "tracking"
	EnquiryTopic  ChangeTopic = "enquiry"
)

// Publisher sends JSON messages to a topic.
type Publisher interface {
	Publish(ctx context.Context, topic ChangeTopic, data any) error
	Close() error
}
