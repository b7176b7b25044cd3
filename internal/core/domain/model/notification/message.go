package notification

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage or RestoreMessage")

// Kind is the business event a message tells the client about.
type Kind string

const (
	KindOrderAcknowledgement Kind = "order_acknowledgement"
	KindETANotification      Kind = "eta_notification"
	KindDispatch             Kind = "dispatch_notification"
	KindCollectionReady      Kind = "collection_ready"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindOrderAcknowledgement, KindETANotification, KindDispatch, KindCollectionReady:
		return Kind(s), nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("notification kind", fmt.Errorf("%q is not a known kind", s))
}

// Status tracks a message through the outbox.
type Status string

const (
	StatusQueued Status = "queued"
	StatusSent   Status = "sent"
	StatusFailed Status = "failed"
)

// Message is one outbound client notification. Lifecycle operations only
// enqueue messages; delivery happens later and is recorded with MarkSent or
// MarkFailed.
type Message struct {
	id        kernel.UUID
	orderID   kernel.UUID
	kind      Kind
	recipient string
	subject   string
	body      string
	status    Status
	lastError string
	createdAt time.Time
	sentAt    *time.Time

	guard guard.ConstructorGuard
}

func NewMessage(id, orderID kernel.UUID, kind Kind, recipient, subject, body string, createdAt time.Time) (*Message, error) {
	var errList []error
	errList = append(errList, id.Validate(), orderID.Validate())
	if _, err := ParseKind(string(kind)); err != nil {
		errList = append(errList, err)
	}
	if !strings.Contains(recipient, "@") {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("recipient", fmt.Errorf("%q is not an email address", recipient)))
	}
	if strings.TrimSpace(subject) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("subject"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Message{
		id:        id,
		orderID:   orderID,
		kind:      kind,
		recipient: strings.TrimSpace(recipient),
		subject:   subject,
		body:      body,
		status:    StatusQueued,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// MessageRecord is the persisted state of a message.
type MessageRecord struct {
	ID        kernel.UUID
	OrderID   kernel.UUID
	Kind      Kind
	Recipient string
	Subject   string
	Body      string
	Status    Status
	LastError string
	CreatedAt time.Time
	SentAt    *time.Time
}

func RestoreMessage(rec MessageRecord) (*Message, error) {
	if err := errors.Join(rec.ID.Validate(), rec.OrderID.Validate()); err != nil {
		return nil, err
	}
	return &Message{
		id:        rec.ID,
		orderID:   rec.OrderID,
		kind:      rec.Kind,
		recipient: rec.Recipient,
		subject:   rec.Subject,
		body:      rec.Body,
		status:    rec.Status,
		lastError: rec.LastError,
		createdAt: rec.CreatedAt,
		sentAt:    rec.SentAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (m *Message) Validate() error {
	if m == nil {
		return ErrMessageIsNotConstructed
	}
	return m.guard.Validate(ErrMessageIsNotConstructed)
}

func (m *Message) ID() kernel.UUID { return m.id }
func (m *Message) OrderID() kernel.UUID { return m.orderID }
func (m *Message) Kind() Kind { return m.kind }
func (m *Message) Recipient() string { return m.recipient }
func (m *Message) Subject() string { return m.subject }
func (m *Message) Body() string { return m.body }
func (m *Message) Status() Status { return m.status }
func (m *Message) LastError() string { return m.lastError }
func (m *Message) CreatedAt() time.Time { return m.createdAt }
func (m *Message) SentAt() *time.Time { return m.sentAt }

func (m *Message) MarkSent(at time.Time) {
	m.status = StatusSent
	m.lastError = ""
	m.sentAt = &at
}

func (m *Message) MarkFailed(cause error) {
	m.status = StatusFailed
	if cause != nil {
		m.lastError = cause.Error()
	}
}

// OrderAcknowledgement is sent when an order is verified.
func OrderAcknowledgement(id, orderID kernel.UUID, orderNumber, recipient string, now time.Time) (*Message, error) {
	return NewMessage(id, orderID, KindOrderAcknowledgement, recipient,
		fmt.Sprintf("Order %s Acknowledged", orderNumber),
		fmt.Sprintf("Your order %s has been received and verified.", orderNumber),
		now)
}

// DispatchNotice tells the client a dispatched order is on its way, or ready
// for pick-up when the client collects.
func DispatchNotice(id, orderID kernel.UUID, orderNumber, recipient string, collection bool, now time.Time) (*Message, error) {
	if collection {
		return NewMessage(id, orderID, KindCollectionReady, recipient,
			fmt.Sprintf("Order %s Ready for Collection", orderNumber),
			fmt.Sprintf("Your order %s is ready to be collected.", orderNumber),
			now)
	}
	return NewMessage(id, orderID, KindDispatch, recipient,
		fmt.Sprintf("Order %s Dispatched", orderNumber),
		fmt.Sprintf("Your order %s has been dispatched.", orderNumber),
		now)
}
