package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/refinly/loan-referral/internal/infra/integration/whatsapp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var sampleNotification = LeadNotification{
	LeadID:           42,
	Name:             "Jane Doe",
	Age:              35,
	LoanAmount:       100000,
	LoanTenure:       20,
	CurrentRepayment: 800.5,
	ReferrerName:     "Ref One",
	Status:           "New",
}

func TestFormatLeadNotification(t *testing.T) {
	want := "📣 *New Lead Submitted*\n\n" +
		"*Lead ID:* 42\n" +
		"*Name:* Jane Doe\n" +
		"*Age:* 35\n" +
		"*Loan Amount:* $100000.00\n" +
		"*Loan Tenure:* 20 years\n" +
		"*Current Repayment:* $800.50\n" +
		"*Referrer:* Ref One\n" +
		"*Status:* New\n"

	assert.Equal(t, want, FormatLeadNotification(sampleNotification))
}

func TestDirectAdminNotifier_SkipsBlankNumbersInOrder(t *testing.T) {
	sender := new(mockSender)
	var order []string
	sender.On("Send", mock.Anything, mock.Anything, FormatLeadNotification(sampleNotification)).
		Run(func(args mock.Arguments) { order = append(order, args.String(1)) }).
		Return(whatsapp.SendResult{Delivered: true})

	n := NewDirectAdminNotifier(sender, []string{"111", " ", "", " 222 "}, nil, nil, zap.NewNop())
	err := n.NotifyNewLead(context.Background(), sampleNotification)

	require.NoError(t, err)
	assert.Equal(t, []string{"111", "222"}, order)
}

func TestDirectAdminNotifier_NoNumbersIsNoop(t *testing.T) {
	sender := new(mockSender)
	n := NewDirectAdminNotifier(sender, nil, nil, nil, zap.NewNop())

	require.NoError(t, n.NotifyNewLead(context.Background(), sampleNotification))
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestDirectAdminNotifier_AllFailed(t *testing.T) {
	sender := new(mockSender)
	sender.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(whatsapp.SendResult{Reason: "missing credentials"})

	n := NewDirectAdminNotifier(sender, []string{"111", "222"}, nil, nil, zap.NewNop())
	err := n.NotifyNewLead(context.Background(), sampleNotification)

	assert.ErrorIs(t, err, ErrNotDelivered)
	sender.AssertNumberOfCalls(t, "Send", 2)
}

func TestDirectAdminNotifier_PartialFailureIsDelivered(t *testing.T) {
	sender := new(mockSender)
	sender.On("Send", mock.Anything, "111", mock.Anything).Return(whatsapp.SendResult{StatusCode: 400})
	sender.On("Send", mock.Anything, "222", mock.Anything).Return(whatsapp.SendResult{Delivered: true})

	n := NewDirectAdminNotifier(sender, []string{"111", "222"}, nil, nil, zap.NewNop())

	assert.NoError(t, n.NotifyNewLead(context.Background(), sampleNotification))
}

func TestDirectAdminNotifier_EmailCopy(t *testing.T) {
	sender, mailer := new(mockSender), new(mockMailer)
	sender.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(whatsapp.SendResult{Delivered: true})
	mailer.On("SendNewLead", []string{"ops@example.com"}, sampleNotification).Return(errors.New("smtp down"))

	n := NewDirectAdminNotifier(sender, []string{"111"}, mailer, []string{"ops@example.com"}, zap.NewNop())

	require.NoError(t, n.NotifyNewLead(context.Background(), sampleNotification))
	mailer.AssertExpectations(t)
}

func TestFallbackNotifier(t *testing.T) {
	t.Run("primary ok", func(t *testing.T) {
		primary, secondary := new(mockNotifier), new(mockNotifier)
		primary.On("NotifyNewLead", mock.Anything, sampleNotification).Return(nil)

		f := &FallbackNotifier{Primary: primary, Secondary: secondary, Logger: zap.NewNop()}

		require.NoError(t, f.NotifyNewLead(context.Background(), sampleNotification))
		secondary.AssertNotCalled(t, "NotifyNewLead", mock.Anything, mock.Anything)
	})

	t.Run("primary fails", func(t *testing.T) {
		primary, secondary := new(mockNotifier), new(mockNotifier)
		primary.On("NotifyNewLead", mock.Anything, sampleNotification).Return(errors.New("channel closed"))
		secondary.On("NotifyNewLead", mock.Anything, sampleNotification).Return(nil)

		f := &FallbackNotifier{Primary: primary, Secondary: secondary, Logger: zap.NewNop()}

		require.NoError(t, f.NotifyNewLead(context.Background(), sampleNotification))
		secondary.AssertExpectations(t)
	})
}
