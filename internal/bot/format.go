package bot

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/eosbot/internal/bot/models"
)

var errInvalidAmount = errors.New("invalid amount format")

// maxRAMBytesPerPurchase bounds a single buyrambytes action.
const maxRAMBytesPerPurchase = math.MaxUint32

// splitN splits comma-separated input into exactly n trimmed parts, nil
// when the shape does not match or a part is empty.
func splitN(text string, n int) []string {
	parts := strings.Split(text, ",")
	if len(parts) != n {
		return nil
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return nil
		}
	}
	return parts
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// parseEOSAmount converts "1EOS" or "3.45eos" to a float amount.
func parseEOSAmount(s string) (float64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !strings.HasSuffix(s, "eos") {
		return 0, errInvalidAmount
	}
	value, err := strconv.ParseFloat(strings.TrimSuffix(s, "eos"), 64)
	if err != nil || value <= 0 {
		return 0, errInvalidAmount
	}
	return value, nil
}

// parseRAMBytes converts "1024bytes", "1.2kb", "1mb" or "2.1gb" to bytes.
func parseRAMBytes(s string) (uint64, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	unit := ""
	factor := 1.0
	switch {
	case strings.HasSuffix(s, "bytes"):
		unit = "bytes"
	case strings.HasSuffix(s, "kb"):
		unit, factor = "kb", 1024
	case strings.HasSuffix(s, "mb"):
		unit, factor = "mb", 1024*1024
	case strings.HasSuffix(s, "gb"):
		unit, factor = "gb", 1024*1024*1024
	default:
		return 0, errInvalidAmount
	}

	value, err := strconv.ParseFloat(strings.TrimSuffix(s, unit), 64)
	if err != nil || value <= 0 {
		return 0, errInvalidAmount
	}
	return uint64(math.Round(value * factor)), nil
}

// parseTransferInput splits "<receiver>,<amount>[,memo...]". Extra commas
// belong to the memo; underscores in the memo become spaces.
func parseTransferInput(text string) (receiver string, amount float64, memo string, err error) {
	parts := strings.Split(text, ",")
	if len(parts) < 2 {
		return "", 0, "", errInvalidAmount
	}
	receiver = strings.TrimSpace(parts[0])
	amount, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || amount <= 0 || receiver == "" {
		return "", 0, "", errInvalidAmount
	}
	memo = strings.ReplaceAll(strings.Join(parts[2:], ","), "_", " ")
	return receiver, amount, memo, nil
}

// formatBytes renders a byte count with the largest fitting binary unit.
func formatBytes(n int64) string {
	v := float64(n)
	switch {
	case v < 1024:
		return fmt.Sprintf("%.2f Bytes", v)
	case v < 1024*1024:
		return fmt.Sprintf("%.2f KB", v/1024)
	case v < 1024*1024*1024:
		return fmt.Sprintf("%.2f MB", v/(1024*1024))
	default:
		return fmt.Sprintf("%.2f GB", v/(1024*1024*1024))
	}
}

// formatMicroseconds renders a CPU time in us/ms/s.
func formatMicroseconds(n int64) string {
	v := float64(n)
	switch {
	case v < 1000:
		return fmt.Sprintf("%.2f us", v)
	case v < 1000*1000:
		return fmt.Sprintf("%.2f ms", v/1000)
	default:
		return fmt.Sprintf("%.2f s", v/(1000*1000))
	}
}

// formatRAMOrders builds the paginated order listing text.
func formatRAMOrders(orders []*models.RAMOrder, offset, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your RAM Orders %d/%d:\n\n", offset+len(orders), total)
	if len(orders) == 0 {
		b.WriteString("No RAM orders found.")
		return b.String()
	}
	for _, order := range orders {
		fmt.Fprintf(&b, "🔹 Account Name: %s\n", order.AccountName)
		fmt.Fprintf(&b, "🔹 RAM Amount: %d bytes\n", order.RAMBytes)
		fmt.Fprintf(&b, "🔹 Price per KB: %g EOS\n", order.PricePerKB)
		fmt.Fprintf(&b, "🔹 Status: %s\n", order.Status)
		fmt.Fprintf(&b, "🔹 Order Date(UTC): %s\n", order.OrderDate.UTC().Format("2006-01-02 15:04:05"))
		switch order.Status {
		case models.OrderStatusSuccess:
			fmt.Fprintf(&b, "🔹 Transaction ID: %s\n", order.TransactionID.String)
		case models.OrderStatusFailed:
			fmt.Fprintf(&b, "🔹 Failure Reason: %s\n", order.FailureReason.String)
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// accountOrderMessage is the creation-steps text for a provisional order.
func accountOrderMessage(accountName, publicKey string) string {
	return fmt.Sprintf("<b>EOS Account Order</b>\n\n"+
		"Create Account Name: <code>%s</code>\n\n"+
		"Creation Steps:\n"+
		"1. Transfer 4 EOS to the following account: \n\n <code>signupeoseos</code> \n\n with the memo: \n<code>%s-%s</code>\n\n"+
		"2. After transfer is complete, wait for 1 minute and then click the activation button below.\n\n"+
		"⚠️ Note: The bot does not charge any fee during the creation process. "+
		"If the account creation fails and leads to asset loss, the bot cannot help you recover assets.\n\n"+
		"Please complete the registration order as soon as possible. "+
		"Once the account name is taken, the EOS cannot be refunded.",
		accountName, accountName, publicKey)
}

// transactionLink points at a public block explorer.
func transactionLink(txID string) string {
	return "https://bloks.io/transaction/" + txID
}

// resourceHelp is appended when a transaction fails on exhausted resources.
func resourceHelp(accountName string) string {
	return fmt.Sprintf("\n\nYour account resources are insufficient. "+
		"Please visit https://eospowerup.io/free and enter your account %s to get free resources, "+
		"or add the Telegram bot @eospowerupbot to get assistance.", accountName)
}
