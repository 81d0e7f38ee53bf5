// Package notifier renders and delivers guest notifications for booking state
// changes, over email and SMS.
package notifier

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/akrgroup/backoffice/internal/domain/shared"
)

// RenderedMessage is a notification rendered for delivery. SMSText is empty
// for kinds that are email only.
type RenderedMessage struct {
	Subject string
	HTML    string
	SMSText string
}

// Renderer turns notification events into deliverable messages
type Renderer struct {
	frontendBaseURL string
}

func NewRenderer(frontendBaseURL string) *Renderer {
	return &Renderer{frontendBaseURL: frontendBaseURL}
}

type templateData struct {
	shared.NotificationEvent
	CheckInDate  string
	CheckOutDate string
	Total        string
	Paid         string
	BookingURL   string
	ReviewURL    string
	QRCode       template.URL
}

var emailTemplates = template.Must(template.New("notifications").Parse(`
{{define "layout_top"}}<html><body style="font-family:Arial,sans-serif;color:#333"><div style="max-width:560px;margin:0 auto;padding:24px"><h2 style="color:#1a4d8f">AKR Group</h2>{{end}}
{{define "layout_bottom"}}<p style="color:#888;font-size:12px">AKR Group Hotels, Sri Lanka</p></div></body></html>{{end}}

{{define "BOOKING_RECEIVED"}}{{template "layout_top"}}
<p>Dear {{.GuestName}},</p>
<p>We received your booking request for <strong>{{.RoomName}}</strong>.</p>
<ul>
<li>Reference: <strong>{{.Reference}}</strong></li>
<li>Check-in: {{.CheckInDate}}</li>
<li>Check-out: {{.CheckOutDate}}</li>
<li>{{.Nights}} night(s), total {{.Total}}</li>
</ul>
<p>We will confirm availability shortly.</p>
{{template "layout_bottom"}}{{end}}

{{define "ADMIN_ALERT"}}{{template "layout_top"}}
<p>New booking request <strong>{{.Reference}}</strong>.</p>
<ul>
<li>Guest: {{.GuestName}} ({{if .GuestEmail}}{{.GuestEmail}}{{else}}{{.GuestPhone}}{{end}})</li>
<li>Room: {{.RoomName}}</li>
<li>Stay: {{.CheckInDate}} to {{.CheckOutDate}} ({{.Nights}} night(s))</li>
<li>Total: {{.Total}}</li>
</ul>
<p><a href="{{.BookingURL}}">Open in back office</a></p>
{{template "layout_bottom"}}{{end}}

{{define "BOOKING_CONFIRMED"}}{{template "layout_top"}}
<p>Dear {{.GuestName}},</p>
<p>Your booking <strong>{{.Reference}}</strong> is confirmed. Show this code at check-in:</p>
{{if .QRCode}}<p><img src="{{.QRCode}}" alt="{{.Reference}}" width="180" height="180"/></p>{{end}}
<ul>
<li>Room: {{.RoomName}}</li>
<li>Check-in: {{.CheckInDate}}</li>
<li>Check-out: {{.CheckOutDate}}</li>
<li>Total: {{.Total}}</li>
</ul>
<p>We look forward to welcoming you.</p>
{{template "layout_bottom"}}{{end}}

{{define "PAYMENT_CONFIRMED"}}{{template "layout_top"}}
<p>Dear {{.GuestName}},</p>
<p>We received your payment of {{.Paid}} for booking <strong>{{.Reference}}</strong>. Your stay is fully paid.</p>
{{template "layout_bottom"}}{{end}}

{{define "REVIEW_INVITATION"}}{{template "layout_top"}}
<p>Dear {{.GuestName}},</p>
<p>Thank you for staying with us in {{.RoomName}}. We would love to hear about your visit.</p>
<p><a href="{{.ReviewURL}}">Leave a review</a></p>
{{template "layout_bottom"}}{{end}}

{{define "REVIEW_REMINDER"}}{{template "layout_top"}}
<p>Dear {{.GuestName}},</p>
<p>Just a gentle reminder: your feedback on booking <strong>{{.Reference}}</strong> helps us improve.</p>
<p><a href="{{.ReviewURL}}">Leave a review</a></p>
{{template "layout_bottom"}}{{end}}

{{define "BOOKING_CANCELLED"}}{{template "layout_top"}}
<p>Dear {{.GuestName}},</p>
<p>Your booking <strong>{{.Reference}}</strong> for {{.RoomName}} has been cancelled.</p>
<p>If this was unexpected, please contact us.</p>
{{template "layout_bottom"}}{{end}}
`))

var subjects = map[shared.NotificationKind]string{
	shared.NotificationBookingReceived:  "We received your booking request",
	shared.NotificationAdminAlert:       "New booking request",
	shared.NotificationBookingConfirmed: "Your booking is confirmed",
	shared.NotificationPaymentConfirmed: "Payment received",
	shared.NotificationReviewInvitation: "How was your stay?",
	shared.NotificationReviewReminder:   "We'd still love your feedback",
	shared.NotificationBookingCancelled: "Your booking was cancelled",
}

// Render builds the email body, subject, and SMS text for an event. Unknown
// kinds return shared.ErrUnknownNotificationKind.
func (r *Renderer) Render(event *shared.NotificationEvent) (*RenderedMessage, error) {
	subject, ok := subjects[event.Kind]
	if !ok {
		return nil, shared.ErrUnknownNotificationKind
	}

	data := templateData{
		NotificationEvent: *event,
		CheckInDate:       event.CheckIn.Format("Mon, 2 Jan 2006"),
		CheckOutDate:      event.CheckOut.Format("Mon, 2 Jan 2006"),
		Total:             formatMoney(event.TotalAmount),
		Paid:              formatMoney(event.AmountPaid),
		BookingURL:        fmt.Sprintf("%s/admin/bookings/%s", r.frontendBaseURL, event.BookingID),
		ReviewURL:         fmt.Sprintf("%s/reviews/new?ref=%s", r.frontendBaseURL, event.Reference),
	}

	if event.Kind == shared.NotificationBookingConfirmed {
		uri, err := referenceQRCode(event.Reference)
		if err != nil {
			// Confirmation still goes out, just without the code
			uri = ""
		}
		data.QRCode = template.URL(uri)
	}

	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, string(event.Kind), data); err != nil {
		return nil, fmt.Errorf("failed to render %s template: %w", event.Kind, err)
	}

	return &RenderedMessage{
		Subject: subject + " - " + event.Reference,
		HTML:    buf.String(),
		SMSText: smsText(event, data),
	}, nil
}

// referenceQRCode encodes the booking reference as an inline PNG data URI
func referenceQRCode(reference string) (string, error) {
	png, err := qrcode.Encode(reference, qrcode.Medium, 180)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

func smsText(event *shared.NotificationEvent, data templateData) string {
	switch event.Kind {
	case shared.NotificationBookingReceived:
		return fmt.Sprintf("AKR Group: booking request %s received for %s, %s. We will confirm shortly.",
			event.Reference, event.RoomName, data.CheckInDate)
	case shared.NotificationBookingConfirmed:
		return fmt.Sprintf("AKR Group: booking %s CONFIRMED. %s, check-in %s. Total %s.",
			event.Reference, event.RoomName, data.CheckInDate, data.Total)
	case shared.NotificationPaymentConfirmed:
		return fmt.Sprintf("AKR Group: payment of %s received for booking %s. Thank you.",
			data.Paid, event.Reference)
	case shared.NotificationBookingCancelled:
		return fmt.Sprintf("AKR Group: booking %s has been cancelled.", event.Reference)
	}
	// Admin alerts and review asks stay email only
	return ""
}

func formatMoney(minor int64) string {
	return fmt.Sprintf("Rs %.2f", float64(minor)/100)
}
