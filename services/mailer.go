package services

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"strconv"
	"time"

	"sklad-backend/models"

	"gopkg.in/gomail.v2"
)

var otpTemplate = template.Must(template.New("otp").Parse(
	`<p>Ваш одноразовый код: <strong>{{.Code}}</strong>.</p><p>Код действует {{.Minutes}} мин.</p>`))

var alertTemplate = template.Must(template.New("alert").Parse(
	`<p>Позиции с низким остатком:</p>
<table border="1" cellpadding="4">
<tr><th>Склад</th><th>Товар</th><th>Код</th><th>Остаток</th><th>Минимум</th></tr>
{{range .}}<tr><td>{{.LocationName}}</td><td>{{.ItemName}}</td><td>{{.ItemCode}}</td><td>{{.CurrentQuantity}}</td><td>{{.MinQuantity}}</td></tr>
{{end}}</table>`))

// Mailer отправляет служебные письма через SMTP.
// Без настроенного SMTP отправка пропускается, это не ошибка.
type Mailer struct {
	host      string
	port      int
	user      string
	password  string
	fromEmail string
	fromName  string
}

// NewMailerFromEnv создает Mailer из переменных окружения
func NewMailerFromEnv() *Mailer {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 465
	}
	fromEmail := os.Getenv("FROM_EMAIL")
	if fromEmail == "" {
		fromEmail = os.Getenv("SMTP_USER")
	}
	fromName := os.Getenv("FROM_NAME")
	if fromName == "" {
		fromName = "Inventory Admin"
	}
	return &Mailer{
		host:      os.Getenv("SMTP_HOST"),
		port:      port,
		user:      os.Getenv("SMTP_USER"),
		password:  os.Getenv("SMTP_PASS"),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// Enabled сообщает, настроена ли отправка почты
func (m *Mailer) Enabled() bool {
	return m.host != "" && m.user != "" && m.password != ""
}

func (m *Mailer) send(to, subject, plain, html string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.fromEmail, m.fromName))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", plain)
	msg.AddAlternative("text/html", html)

	dialer := gomail.NewDialer(m.host, m.port, m.user, m.password)
	dialer.SSL = m.port == 465
	return dialer.DialAndSend(msg)
}

// SendOtpEmail отправляет одноразовый код администратору
func (m *Mailer) SendOtpEmail(to, code string, ttl time.Duration) error {
	minutes := int(ttl.Round(time.Minute) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}

	var buf bytes.Buffer
	if err := otpTemplate.Execute(&buf, map[string]interface{}{"Code": code, "Minutes": minutes}); err != nil {
		return err
	}
	plain := fmt.Sprintf("Ваш одноразовый код: %s. Код действует %d мин.", code, minutes)

	return m.send(to, "Код для входа администратора", plain, buf.String())
}

// SendLowStockAlert отправляет сводку по позициям с низким остатком
func (m *Mailer) SendLowStockAlert(to string, rows []models.StockView) error {
	var buf bytes.Buffer
	if err := alertTemplate.Execute(&buf, rows); err != nil {
		return err
	}

	plain := "Позиции с низким остатком:\n"
	for _, r := range rows {
		plain += fmt.Sprintf("- %s / %s (%s): %d, минимум %d\n",
			r.LocationName, r.ItemName, r.ItemCode, r.CurrentQuantity, r.MinQuantity)
	}

	subject := fmt.Sprintf("Низкий остаток: %d позиций", len(rows))
	return m.send(to, subject, plain, buf.String())
}
