package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/arun-kumar2004/TastyCart/internal/domain"
)

// All human-readable times are rendered in the store's canonical zone,
// regardless of where the client is.
var displayZone = loadDisplayZone()

func loadDisplayZone() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.FixedZone("IST", 5*3600+30*60)
	}
	return loc
}

func clock(t time.Time) string {
	return t.In(displayZone).Format("03:04 PM")
}

func VerificationCodeMessage(user *domain.User, code string, expiry time.Duration) Message {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour verification code to confirm your order is: %s\n(This code will expire in %d minutes)\n\nIf this is not you, ignore this email.\n\nThank you, TastyCart",
		user.DisplayName(), code, int(expiry.Minutes()))

	return Message{
		To:      user.Email,
		Subject: "Your TastyCart verification code",
		Body:    body,
	}
}

func ResendCodeMessage(user *domain.User, code string, expiry time.Duration) Message {
	msg := VerificationCodeMessage(user, code, expiry)
	msg.Subject = "Your TastyCart verification code (resend)"
	return msg
}

// OrderConfirmationMessage tabulates the order lines with a grand-total row.
func OrderConfirmationMessage(user *domain.User, order *domain.Order) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", user.DisplayName())
	fmt.Fprintf(&b, "Your order #%s is confirmed.\n", order.ID)
	fmt.Fprintf(&b, "Arrival time: %s (in %d minutes)\n\n", clock(order.EstimateDeliveryTime), order.EtaMinutes)

	b.WriteString("Order Summary:\n")
	fmt.Fprintf(&b, "%-6s %-30s %-8s %-10s %-10s\n", "Sr No", "Item Name", "Qty", "Price", "Total")
	for i, line := range order.Lines {
		fmt.Fprintf(&b, "%-6d %-30s %-8d %-10s %-10s\n",
			i+1, line.Name, line.Quantity, line.Price.StringFixed(2), line.Total().StringFixed(2))
	}
	fmt.Fprintf(&b, "%-56s %-10s\n", "Grand Total", order.GrandTotal.StringFixed(2))

	b.WriteString("\nIf this is not you, ignore this email.\n\nThank you, TastyCart")

	return Message{
		To:      user.Email,
		Subject: fmt.Sprintf("TastyCart: Order #%s confirmed", order.ID),
		Body:    b.String(),
	}
}

func DeliveryOTPMessage(user *domain.User, order *domain.Order, code string, expiresAt time.Time) Message {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour delivery OTP is: %s\nThis code will expire at %s IST.\n\nIf this is not you, you can ignore this email.\n\nThank you, TastyCart",
		user.DisplayName(), code, clock(expiresAt))

	return Message{
		To:      user.Email,
		Subject: fmt.Sprintf("TastyCart: OTP for Order #%s", order.ID),
		Body:    body,
	}
}

func CancelOTPMessage(user *domain.User, order *domain.Order, code string) Message {
	body := fmt.Sprintf(
		"Hello %s,\n\nWe received a request to cancel your order #%s.\nYour OTP to confirm the cancellation is: %s\nThis OTP is valid for 10 minutes only.\n\nIf you did NOT request this cancellation, please ignore this email. Your order will remain active.\n\nThank you, TastyCart Team",
		user.DisplayName(), order.ID, code)

	return Message{
		To:      user.Email,
		Subject: fmt.Sprintf("TastyCart: OTP to Cancel Your Order #%s", order.ID),
		Body:    body,
	}
}
