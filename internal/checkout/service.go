package checkout

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/huum-shop/storefront-api/internal/cart"
	"github.com/huum-shop/storefront-api/internal/geo"
)

// Order is the checkout payload. The postal code comes from the accepted
// shipping quote, so it is validated upstream and arrives here normalized.
type Order struct {
	FullName          string `json:"fullName" validate:"required,min=3"`
	Email             string `json:"email" validate:"required,email"`
	Phone             string `json:"phone" validate:"required,min=10,max=15"`
	ZipCode           string `json:"zipCode" validate:"required,len=8,numeric"`
	Street            string `json:"street" validate:"required"`
	Number            string `json:"number" validate:"required"`
	Complement        string `json:"complement"`
	Neighborhood      string `json:"neighborhood" validate:"required"`
	City              string `json:"city" validate:"required"`
	State             string `json:"state" validate:"required,len=2"`
	DiscretePackaging bool   `json:"discretePackaging"`
	Notes             string `json:"notes"`
}

// Receipt is what the client gets back after the order is handed off.
type Receipt struct {
	Reference   string `json:"reference"`
	WhatsAppURL string `json:"whatsappUrl"`
	Message     string `json:"message"`
}

// Service renders order summaries and the messaging hand-off link. Orders
// are not stored: the conversation with the shop happens over WhatsApp.
type Service struct {
	Number string
	UseAPI bool
	Now    func() time.Time
}

const separator = "-------------"

// Summary renders the order message sent to the shop.
func (s *Service) Summary(order Order, items []cart.LineItem, total geo.Money) string {
	var itemLines []string
	for _, it := range items {
		itemLines = append(itemLines, fmt.Sprintf("%dx %s - %s", it.Quantity, it.Product.Name, geo.FormatBRL(it.Product.Price)))
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	lines := []string{
		"\U0001F6D2 *NOVO PEDIDO - HUUM*",
		separator,
		"\U0001F4E6 *ITENS DO PEDIDO:*",
		strings.Join(itemLines, "\n"),
		separator,
		"\U0001F3E0 *DADOS DE ENTREGA:*",
		order.FullName,
		addressLine(order),
		order.Neighborhood,
		order.City + "/" + order.State,
		"CEP: " + order.ZipCode,
	}
	if order.DiscretePackaging {
		lines = append(lines, "\U0001F512 *EMBALAGEM DISCRETA SOLICITADA*")
	}
	if order.Notes != "" {
		lines = append(lines, "\U0001F4DD *Observações:* "+order.Notes)
	}
	lines = append(lines,
		separator,
		"\U0001F4B0 *TOTAL:* "+geo.FormatBRL(total),
		separator,
		"\U0001F552 "+now().Format("02/01/2006 15:04:05"),
	)

	// Empty lines are dropped, e.g. a cart with no items.
	out := lines[:0]
	for _, l := range lines {
		if l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

func addressLine(o Order) string {
	line := o.Street + ", " + o.Number
	if o.Complement != "" {
		line += " - " + o.Complement
	}
	return line
}

// Link builds the WhatsApp deep link carrying the message.
func (s *Service) Link(message string) string {
	digits := keepDigits(s.Number)
	encoded := url.QueryEscape(message)
	if s.UseAPI {
		return "https://api.whatsapp.com/send?phone=" + digits + "&text=" + encoded
	}
	return "https://wa.me/" + digits + "?text=" + encoded
}

// NewReference issues an opaque order reference for support follow-up.
func NewReference() string {
	return uuid.NewString()
}

func keepDigits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
