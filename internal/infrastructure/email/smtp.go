package email

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/gomail.v2"

	"github.com/orris-inc/subadmin/internal/application/subscription/usecases"
	"github.com/orris-inc/subadmin/internal/domain/subscription"
	vo "github.com/orris-inc/subadmin/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/subadmin/internal/shared/biztime"
	"github.com/orris-inc/subadmin/internal/shared/logger"
)

type SMTPConfig struct {
	Host           string
	Port           int
	Username       string
	Password       string
	FromAddress    string
	FromName       string
	AdminAddresses []string
}

// Sender is satisfied by *gomail.Dialer.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailNotifier mails admins about new purchases and users about status
// changes of their own purchases.
type EmailNotifier struct {
	config  SMTPConfig
	sender  Sender
	printer *message.Printer
	logger  logger.Interface
}

var _ usecases.PurchaseNotifier = (*EmailNotifier)(nil)

func NewEmailNotifier(config SMTPConfig, logger logger.Interface) *EmailNotifier {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	return NewEmailNotifierWithSender(config, dialer, logger)
}

func NewEmailNotifierWithSender(config SMTPConfig, sender Sender, logger logger.Interface) *EmailNotifier {
	return &EmailNotifier{
		config:  config,
		sender:  sender,
		printer: message.NewPrinter(language.English),
		logger:  logger,
	}
}

func (n *EmailNotifier) NotifyNewPurchase(ctx context.Context, event subscription.NewPurchaseEvent) error {
	if len(n.config.AdminAddresses) == 0 {
		return nil
	}

	m := n.newPurchaseMessage(event)
	if err := n.send(ctx, m); err != nil {
		return fmt.Errorf("failed to mail new purchase %s: %w", event.PurchaseSID, err)
	}

	n.logger.Debugw("new purchase mail sent", "purchase_sid", event.PurchaseSID)
	return nil
}

func (n *EmailNotifier) NotifyPurchaseStatus(ctx context.Context, event subscription.PurchaseStatusEvent) error {
	if event.UserEmail == "" {
		return nil
	}

	m := n.statusMessage(event)
	if err := n.send(ctx, m); err != nil {
		return fmt.Errorf("failed to mail status of purchase %s: %w", event.PurchaseSID, err)
	}

	n.logger.Debugw("purchase status mail sent",
		"purchase_sid", event.PurchaseSID,
		"status", event.Status,
	)
	return nil
}

// send gives up when ctx is done; the SMTP exchange itself keeps running.
func (n *EmailNotifier) send(ctx context.Context, m *gomail.Message) error {
	done := make(chan error, 1)
	go func() {
		done <- n.sender.DialAndSend(m)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (n *EmailNotifier) newPurchaseMessage(event subscription.NewPurchaseEvent) *gomail.Message {
	price := n.formatPrice(event.Price)
	subject := fmt.Sprintf("New purchase: %s by %s", event.PackageName, displayName(event.UserName, event.UserEmail))

	plainBody := fmt.Sprintf(`A new purchase is waiting for review.

User: %s <%s>
Package: %s (%d days)
Price: %s
Proof of payment: %s
Submitted: %s
`,
		event.UserName, event.UserEmail,
		event.PackageName, event.NumOfDays,
		price,
		event.ProofURL,
		biztime.FormatInBizTimezone(event.CreatedAt, time.RFC1123),
	)

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>New purchase waiting for review</h2>
			<p><strong>User:</strong> %s &lt;%s&gt;</p>
			<p><strong>Package:</strong> %s (%d days)</p>
			<p><strong>Price:</strong> %s</p>
			<p><a href="%s">View proof of payment</a></p>
		</body>
		</html>
	`,
		html.EscapeString(event.UserName), html.EscapeString(event.UserEmail),
		html.EscapeString(event.PackageName), event.NumOfDays,
		price,
		html.EscapeString(event.ProofURL),
	)

	m := n.newMessage(subject, plainBody, htmlBody)
	m.SetHeader("To", n.config.AdminAddresses...)
	return m
}

func (n *EmailNotifier) statusMessage(event subscription.PurchaseStatusEvent) *gomail.Message {
	var subject, line string
	switch event.Status {
	case vo.PurchaseStatusApproved:
		subject = "Your purchase has been approved"
		line = fmt.Sprintf("Your purchase of %s has been approved.", event.PackageName)
		if event.ValidUntil != nil {
			line += " Your subscription is now valid until " +
				biztime.FormatInBizTimezone(*event.ValidUntil, biztime.DateLayout) + "."
		}
	case vo.PurchaseStatusRejected:
		subject = "Your purchase has been rejected"
		line = fmt.Sprintf("Your purchase of %s has been rejected. Please contact support if you believe this is a mistake.", event.PackageName)
	default:
		subject = "We received your purchase"
		line = fmt.Sprintf("Your purchase of %s has been received and is waiting for review.", event.PackageName)
	}

	greeting := "Hello " + displayName(event.UserName, event.UserEmail) + ","
	plainBody := greeting + "\n\n" + line + "\n"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<p>%s</p>
			<p>%s</p>
		</body>
		</html>
	`, html.EscapeString(greeting), html.EscapeString(line))

	m := n.newMessage(subject, plainBody, htmlBody)
	m.SetAddressHeader("To", event.UserEmail, event.UserName)
	return m
}

func (n *EmailNotifier) newMessage(subject, plainBody, htmlBody string) *gomail.Message {
	m := gomail.NewMessage(gomail.SetEncoding(gomail.Unencoded))
	m.SetAddressHeader("From", n.config.FromAddress, n.config.FromName)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)
	return m
}

// formatPrice renders an amount in the smallest currency unit with digit
// grouping, e.g. 150000 -> "150,000".
func (n *EmailNotifier) formatPrice(price uint64) string {
	return n.printer.Sprintf("%d", price)
}

func displayName(name, email string) string {
	if strings.TrimSpace(name) != "" {
		return name
	}
	return email
}
