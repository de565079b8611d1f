package service

import (
	"fmt"
	"log"
	"net/smtp"
	"time"

	"github.com/Domi31tls/valentine/internal/config"
)

// EmailService delivers magic links and login notifications. With no SMTP
// host configured it degrades to logging the link, which is how local
// development runs.
type EmailService struct {
	cfg     config.SMTPConfig
	linkTTL time.Duration
}

func NewEmailService(cfg config.SMTPConfig, linkTTL time.Duration) *EmailService {
	return &EmailService{cfg: cfg, linkTTL: linkTTL}
}

func (s *EmailService) configured() bool {
	return s.cfg.Host != "" && s.cfg.FromAddr != ""
}

func (s *EmailService) send(to, subject, body string) error {
	if !s.configured() {
		log.Printf("email (smtp not configured) to=%s subject=%q\n%s", to, subject, body)
		return nil
	}

	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		s.cfg.FromName, s.cfg.FromAddr, to, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var a smtp.Auth
	if s.cfg.User != "" {
		a = smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	}
	if err := smtp.SendMail(addr, a, s.cfg.FromAddr, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func magicLinkBody(name, link string, ttl time.Duration) string {
	return fmt.Sprintf(
		"Bonjour %s,\n\nVoici votre lien de connexion :\n\n%s\n\nCe lien expire dans %d minutes et ne peut être utilisé qu'une seule fois.\n",
		name, link, int(ttl.Minutes()))
}

// SendMagicLink mails the one-time login link.
func (s *EmailService) SendMagicLink(to, name, link string) error {
	return s.send(to, "Votre lien de connexion", magicLinkBody(name, link, s.linkTTL))
}

// SendLoginNotification mails a heads-up after a successful login. Failures
// are logged, never surfaced: the login already happened.
func (s *EmailService) SendLoginNotification(to, name string, at time.Time, userAgent string) {
	body := fmt.Sprintf(
		"Bonjour %s,\n\nUne connexion à votre administration a eu lieu le %s.\nNavigateur : %s\n\nSi ce n'était pas vous, révoquez vos sessions.\n",
		name, at.Format("02/01/2006 15:04"), userAgent)
	if err := s.send(to, "Nouvelle connexion", body); err != nil {
		log.Printf("email: login notification to %s: %v", to, err)
	}
}
