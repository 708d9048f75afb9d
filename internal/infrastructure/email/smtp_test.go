package email

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/orris-inc/subadmin/internal/domain/subscription"
	vo "github.com/orris-inc/subadmin/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/subadmin/internal/shared/logger"
)

type captureSender struct {
	messages []*gomail.Message
	err      error
	block    chan struct{}
}

func (s *captureSender) DialAndSend(m ...*gomail.Message) error {
	if s.block != nil {
		<-s.block
	}
	s.messages = append(s.messages, m...)
	return s.err
}

func render(t *testing.T, m *gomail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func newNotifier(sender Sender, admins ...string) *EmailNotifier {
	return NewEmailNotifierWithSender(SMTPConfig{
		FromAddress:    "noreply@example.com",
		FromName:       "Subadmin",
		AdminAddresses: admins,
	}, sender, logger.NewLogger())
}

func TestNotifyNewPurchase_MailsAdmins(t *testing.T) {
	sender := &captureSender{}
	n := newNotifier(sender, "ops@example.com", "boss@example.com")

	err := n.NotifyNewPurchase(context.Background(), subscription.NewPurchaseEvent{
		PurchaseSID: "pur_1",
		UserName:    "Alice <script>",
		UserEmail:   "alice@example.com",
		PackageName: "Yearly",
		NumOfDays:   365,
		Price:       1500000,
		ProofURL:    "http://localhost:8080/uploads/transitions/a.png",
		CreatedAt:   time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, sender.messages, 1)

	m := sender.messages[0]
	assert.Equal(t, []string{"ops@example.com", "boss@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"New purchase: Yearly by Alice <script>"}, m.GetHeader("Subject"))

	body := render(t, m)
	assert.Contains(t, body, "1,500,000")
	assert.Contains(t, body, "Alice &lt;script&gt;")
	assert.NotContains(t, body, "<strong>User:</strong> Alice <script>")
}

func TestNotifyNewPurchase_NoAdminsIsNoop(t *testing.T) {
	sender := &captureSender{}
	n := newNotifier(sender)

	require.NoError(t, n.NotifyNewPurchase(context.Background(), subscription.NewPurchaseEvent{}))
	assert.Empty(t, sender.messages)
}

func TestNotifyPurchaseStatus_Subjects(t *testing.T) {
	validUntil := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		status  vo.PurchaseStatus
		subject string
		phrase  string
	}{
		{vo.PurchaseStatusPending, "We received your purchase", "waiting for review"},
		{vo.PurchaseStatusApproved, "Your purchase has been approved", "valid until 2025-03-01"},
		{vo.PurchaseStatusRejected, "Your purchase has been rejected", "has been rejected"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			sender := &captureSender{}
			n := newNotifier(sender)

			err := n.NotifyPurchaseStatus(context.Background(), subscription.PurchaseStatusEvent{
				PurchaseSID: "pur_1",
				UserName:    "Alice",
				UserEmail:   "alice@example.com",
				PackageName: "Monthly",
				Status:      tt.status,
				ValidUntil:  &validUntil,
			})
			require.NoError(t, err)
			require.Len(t, sender.messages, 1)

			m := sender.messages[0]
			assert.Equal(t, []string{tt.subject}, m.GetHeader("Subject"))
			assert.Contains(t, m.GetHeader("To")[0], "alice@example.com")
			assert.Contains(t, render(t, m), tt.phrase)
		})
	}
}

func TestNotifyPurchaseStatus_NoEmailIsNoop(t *testing.T) {
	sender := &captureSender{}
	n := newNotifier(sender)

	require.NoError(t, n.NotifyPurchaseStatus(context.Background(), subscription.PurchaseStatusEvent{Status: vo.PurchaseStatusApproved}))
	assert.Empty(t, sender.messages)
}

func TestNotify_SendErrors(t *testing.T) {
	sender := &captureSender{err: errors.New("connection refused")}
	n := newNotifier(sender, "ops@example.com")

	err := n.NotifyNewPurchase(context.Background(), subscription.NewPurchaseEvent{PurchaseSID: "pur_1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestNotify_ContextCancelled(t *testing.T) {
	sender := &captureSender{block: make(chan struct{})}
	defer close(sender.block)
	n := newNotifier(sender, "ops@example.com")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := n.NotifyNewPurchase(ctx, subscription.NewPurchaseEvent{PurchaseSID: "pur_1"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
