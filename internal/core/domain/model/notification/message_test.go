package notification_test

import (
	"errors"
	"testing"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/notification"
	"manufacturing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderAcknowledgement(t *testing.T) {
	now := time.Now()

	m, err := notification.OrderAcknowledgement(kernel.NewUUID(), kernel.NewUUID(), "ORD-77", "buyer@client.example", now)

	require.NoError(t, err)
	assert.Equal(t, notification.KindOrderAcknowledgement, m.Kind())
	assert.Equal(t, "Order ORD-77 Acknowledged", m.Subject())
	assert.Equal(t, notification.StatusQueued, m.Status())
}

func TestDispatchNotice(t *testing.T) {
	m, err := notification.DispatchNotice(kernel.NewUUID(), kernel.NewUUID(), "ORD-5", "yard@client.example", true, time.Now())
	require.NoError(t, err)
	assert.Equal(t, notification.KindCollectionReady, m.Kind())

	m, err = notification.DispatchNotice(kernel.NewUUID(), kernel.NewUUID(), "ORD-5", "yard@client.example", false, time.Now())
	require.NoError(t, err)
	assert.Equal(t, notification.KindDispatch, m.Kind())
}

func TestNewMessage_Invalid(t *testing.T) {
	_, err := notification.NewMessage(kernel.NewUUID(), kernel.NewUUID(), "sms", "nobody", "", "", time.Now())

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestMessage_Delivery(t *testing.T) {
	m, err := notification.OrderAcknowledgement(kernel.NewUUID(), kernel.NewUUID(), "ORD-1", "a@b.example", time.Now())
	require.NoError(t, err)

	m.MarkFailed(errors.New("smtp timeout"))
	assert.Equal(t, notification.StatusFailed, m.Status())
	assert.Equal(t, "smtp timeout", m.LastError())

	sentAt := time.Now()
	m.MarkSent(sentAt)
	assert.Equal(t, notification.StatusSent, m.Status())
	assert.Empty(t, m.LastError())
	assert.Equal(t, sentAt, *m.SentAt())
}
