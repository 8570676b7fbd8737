package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/EmmanuelQuintero/Control-Plus-7/config"
)

// Mailer interfaz de envío de correos de notificación
// Se abstrae para poder simular el transporte SMTP en pruebas
type Mailer interface {
	Enviar(destinatario, asunto, mensaje string) error
}

// SMTPMailer implementación con gomail sobre SMTP
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer crea el mailer desde la configuración SMTP
func NewSMTPMailer(cfg *config.MailConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Enviar envía un correo HTML con el estilo visual de Control+
func (m *SMTPMailer) Enviar(destinatario, asunto, mensaje string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", destinatario)
	msg.SetHeader("Subject", asunto)
	msg.SetBody("text/plain", mensaje)
	msg.AddAlternative("text/html", cuerpoHTML(mensaje))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("error enviando correo a %s: %w", destinatario, err)
	}
	return nil
}

func cuerpoHTML(mensaje string) string {
	return fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
        <h2 style="color: #2563eb;">Control+ - Notificación</h2>
        <div style="background-color: #f3f4f6; padding: 20px; border-radius: 8px;">
          <p style="color: #374151; line-height: 1.6;">%s</p>
        </div>
        <p style="color: #6b7280; font-size: 14px; margin-top: 20px;">
          Este es un mensaje automático de Control+
        </p>
      </div>`, mensaje)
}
