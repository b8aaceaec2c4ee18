package services

import (
	"fmt"
	"os"
	"strconv"

	"topluluk.link/configs/configslog"
	"topluluk.link/models"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// IMailService davet e-postaları için arayüz. Gönderim en iyi çabadır;
// SMTP yapılandırılmamışsa sessizce atlanır.
type IMailService interface {
	SendEventInvite(to string, event *models.Event, message string)
	SendSectionInvite(to string, section *models.Section, message string)
}

type MailService struct {
	host string
	port int
	user string
	pass string
	from string
}

func NewMailService() IMailService {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = os.Getenv("SMTP_USER")
	}
	return &MailService{
		host: os.Getenv("SMTP_HOST"),
		port: port,
		user: os.Getenv("SMTP_USER"),
		pass: os.Getenv("SMTP_PASSWORD"),
		from: from,
	}
}

func (s *MailService) send(to, subject, body string) {
	if s.host == "" {
		configslog.SLog.Debugf("SMTP yapılandırılmamış, e-posta atlandı: %s", subject)
		return
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.user, s.pass)
	if err := d.DialAndSend(m); err != nil {
		configslog.Log.Warn("E-posta gönderilemedi", zap.String("to", to), zap.Error(err))
	}
}

func (s *MailService) SendEventInvite(to string, event *models.Event, message string) {
	body := fmt.Sprintf("\"%s\" etkinliğine davet edildiniz.\n", event.Title)
	if message != "" {
		body += "\nDavet notu: " + message + "\n"
	}
	if event.ShareKey != "" {
		body += fmt.Sprintf("\nEtkinlik sayfası: %s/e/%s\n", os.Getenv("APP_BASE_URL"), event.ShareKey)
	}
	s.send(to, "Etkinlik daveti: "+event.Title, body)
}

func (s *MailService) SendSectionInvite(to string, section *models.Section, message string) {
	body := fmt.Sprintf("\"%s\" bölümüne davet edildiniz.\n", section.Name)
	if message != "" {
		body += "\nDavet notu: " + message + "\n"
	}
	s.send(to, "Bölüm daveti: "+section.Name, body)
}

var _ IMailService = (*MailService)(nil)
