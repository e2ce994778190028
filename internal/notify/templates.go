package notify

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"

	"churchcms/internal/domain"
)

type emailData struct {
	ConfirmationNumber string
	ClientName         string
	ClientEmail        string
	ClientPhone        string
	Location           string
	CounsellorName     string
	Date               string
	Time               string
	Duration           int
	Online             bool
	MeetingURL         string
	Topic              string
	Notes              string
}

func newEmailData(b domain.Booking, counsellor domain.Counsellor) emailData {
	location := b.Country
	if b.City != "" {
		location = b.City + ", " + b.Country
	}

	date := b.PreferredDate
	if d, err := time.Parse(domain.DateLayout, b.PreferredDate); err == nil {
		date = d.Format("Monday, 2 January 2006")
	}

	return emailData{
		ConfirmationNumber: b.ConfirmationNumber,
		ClientName:         b.ClientName(),
		ClientEmail:        b.Email,
		ClientPhone:        b.Phone,
		Location:           location,
		CounsellorName:     counsellor.Name,
		Date:               date,
		Time:               b.PreferredTime,
		Duration:           b.SessionDuration,
		Online:             b.BookingType == domain.BookingTypeOnline,
		MeetingURL:         b.MeetingURL,
		Topic:              b.Topic,
		Notes:              b.Notes,
	}
}

var clientHTML = htmltemplate.Must(htmltemplate.New("client").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Your counselling session is booked</h2>
  <p>Dear {{.ClientName}},</p>
  <p>Thank you for reaching out. Your session with <strong>{{.CounsellorName}}</strong> has been scheduled.</p>
  <table cellpadding="4">
    <tr><td>Confirmation number</td><td><strong>{{.ConfirmationNumber}}</strong></td></tr>
    <tr><td>Date</td><td>{{.Date}}</td></tr>
    <tr><td>Time</td><td>{{.Time}}</td></tr>
    <tr><td>Duration</td><td>{{.Duration}} minutes</td></tr>
    <tr><td>Session type</td><td>{{if .Online}}Online{{else}}In person{{end}}</td></tr>
    <tr><td>Topic</td><td>{{.Topic}}</td></tr>
  </table>
  {{if .Online}}{{if .MeetingURL}}<p>Join your session here: <a href="{{.MeetingURL}}">{{.MeetingURL}}</a></p>{{end}}
  {{else}}<p>Please arrive at the church office ten minutes before your session.</p>{{end}}
  <p>If you need to reschedule, reply to this email quoting your confirmation number.</p>
</body>
</html>`))

var clientText = texttemplate.Must(texttemplate.New("client").Parse(`Dear {{.ClientName}},

Your counselling session with {{.CounsellorName}} has been scheduled.

Confirmation number: {{.ConfirmationNumber}}
Date: {{.Date}}
Time: {{.Time}}
Duration: {{.Duration}} minutes
Session type: {{if .Online}}Online{{else}}In person{{end}}
Topic: {{.Topic}}
{{if .Online}}{{if .MeetingURL}}
Join link: {{.MeetingURL}}
{{end}}{{else}}
Please arrive at the church office ten minutes before your session.
{{end}}
If you need to reschedule, reply to this email quoting your confirmation number.
`))

var counsellorHTML = htmltemplate.Must(htmltemplate.New("counsellor").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>New counselling booking</h2>
  <p>{{.CounsellorName}}, a new session has been booked with you.</p>
  <table cellpadding="4">
    <tr><td>Confirmation number</td><td>{{.ConfirmationNumber}}</td></tr>
    <tr><td>Client</td><td>{{.ClientName}}</td></tr>
    <tr><td>Email</td><td>{{.ClientEmail}}</td></tr>
    <tr><td>Phone</td><td>{{.ClientPhone}}</td></tr>
    <tr><td>Location</td><td>{{.Location}}</td></tr>
    <tr><td>Date</td><td>{{.Date}} at {{.Time}} ({{.Duration}} minutes)</td></tr>
    <tr><td>Session type</td><td>{{if .Online}}Online{{else}}In person{{end}}</td></tr>
    <tr><td>Topic</td><td>{{.Topic}}</td></tr>
    {{if .Notes}}<tr><td>Notes</td><td>{{.Notes}}</td></tr>{{end}}
  </table>
  {{if .MeetingURL}}<p>Meeting link: <a href="{{.MeetingURL}}">{{.MeetingURL}}</a></p>{{end}}
</body>
</html>`))

var counsellorText = texttemplate.Must(texttemplate.New("counsellor").Parse(`{{.CounsellorName}}, a new session has been booked with you.

Confirmation number: {{.ConfirmationNumber}}
Client: {{.ClientName}}
Email: {{.ClientEmail}}
Phone: {{.ClientPhone}}
Location: {{.Location}}
Date: {{.Date}} at {{.Time}} ({{.Duration}} minutes)
Session type: {{if .Online}}Online{{else}}In person{{end}}
Topic: {{.Topic}}
{{if .Notes}}Notes: {{.Notes}}
{{end}}{{if .MeetingURL}}Meeting link: {{.MeetingURL}}
{{end}}`))

// ClientConfirmation renders the email sent to the person who booked.
func ClientConfirmation(b domain.Booking, counsellor domain.Counsellor) (Message, error) {
	data := newEmailData(b, counsellor)

	html, text, err := render(clientHTML, clientText, data)
	if err != nil {
		return Message{}, fmt.Errorf("render client confirmation: %w", err)
	}

	return Message{
		ToEmail: b.Email,
		ToName:  data.ClientName,
		Subject: "Counselling session confirmed - " + b.ConfirmationNumber,
		Text:    text,
		HTML:    html,
	}, nil
}

// CounsellorNotification renders the email sent to the assigned counsellor.
func CounsellorNotification(b domain.Booking, counsellor domain.Counsellor) (Message, error) {
	data := newEmailData(b, counsellor)

	html, text, err := render(counsellorHTML, counsellorText, data)
	if err != nil {
		return Message{}, fmt.Errorf("render counsellor notification: %w", err)
	}

	return Message{
		ToEmail: counsellor.Email,
		ToName:  counsellor.Name,
		Subject: fmt.Sprintf("New booking: %s on %s at %s", data.ClientName, b.PreferredDate, b.PreferredTime),
		Text:    text,
		HTML:    html,
	}, nil
}

func render(h *htmltemplate.Template, t *texttemplate.Template, data emailData) (string, string, error) {
	var hb, tb bytes.Buffer
	if err := h.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err := t.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}
