package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/hemahemapathi/Grocery-Shop-App-sub000/config"
	"github.com/hemahemapathi/Grocery-Shop-App-sub000/models"
)

var cfg config.SMTPConfig

func Init(c config.SMTPConfig) {
	cfg = c
}

// Enabled reports whether a relay is configured. Confirmation mail is
// best-effort; with no relay the caller just skips it.
func Enabled() bool {
	return cfg.Host != ""
}

// SendOrderConfirmation mails a plain-text summary of a freshly created
// order.
func SendOrderConfirmation(to string, order models.Order) error {
	shortID := order.ID.Hex()
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	subject := fmt.Sprintf("Order confirmation #%s", shortID)

	var b strings.Builder
	fmt.Fprintf(&b, "Thanks for your order!\r\n\r\n")
	for _, item := range order.OrderItems {
		fmt.Fprintf(&b, "  %dx %s @ %.2f\r\n", item.Quantity, item.Name, item.Price)
	}
	fmt.Fprintf(&b, "\r\nItems: %.2f\r\nShipping: %.2f\r\nTax: %.2f\r\nTotal: %.2f\r\n",
		order.ItemsPrice, order.ShippingPrice, order.TaxPrice, order.TotalPrice)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		cfg.From, to, subject, b.String())
	addr := cfg.Host + ":" + cfg.Port
	return smtp.SendMail(addr, nil, cfg.From, []string{to}, []byte(msg))
}
