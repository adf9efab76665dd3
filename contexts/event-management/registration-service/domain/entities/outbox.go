package entities

type MessageState string

const (
	MessageStatePending    MessageState = "pending"
	MessageStateProcessing MessageState = "processing"
	MessageStateSent       MessageState = "sent"
	MessageStateFailed     MessageState = "failed"
)

// MaxDeliveryAttempts caps automatic redelivery. A message that fails its
// fifth claimed attempt is parked as failed for manual remediation.
const MaxDeliveryAttempts = 5

const TopicRegistration = "registration"

// OutboxMessage is persisted in the same transaction as the business write
// that requires a notification. Only the delivery worker mutates it afterwards.
type OutboxMessage struct {
	ID        int64
	MessageID string
	Topic     string
	Payload   []byte
	State     MessageState
	Attempts  int
	LastError string
}

// Exhausted reports whether the message has consumed its final attempt.
func (m OutboxMessage) Exhausted() bool {
	return m.Attempts >= MaxDeliveryAttempts
}
