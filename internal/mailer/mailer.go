package mailer

import (
	"log"
	"os"
	"strconv"

	"github.com/gammazero/workerpool"
	"gopkg.in/gomail.v2"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Sender interface {
	Send(msg Message) error
}

// SMTPSender delivers mail through an SMTP relay.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *SMTPSender) Send(msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	return s.dialer.DialAndSend(m)
}

// ConsoleSender writes mail to the log instead of delivering it. Used in
// development when no SMTP relay is configured.
type ConsoleSender struct{}

func (ConsoleSender) Send(msg Message) error {
	log.Printf("mailer: to=%s subject=%q\n%s", msg.To, msg.Subject, msg.Body)
	return nil
}

// Dispatcher sends mail best-effort on a worker pool. Enqueue never blocks
// the caller on delivery and never reports failures back to it; transport
// errors are logged for operators only.
type Dispatcher struct {
	sender Sender
	pool   *workerpool.WorkerPool
}

func NewDispatcher(sender Sender, workers int) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		pool:   workerpool.New(workers),
	}
}

func (d *Dispatcher) Enqueue(msg Message) {
	d.pool.Submit(func() {
		if err := d.sender.Send(msg); err != nil {
			log.Printf("mailer: failed to send to %s: %v", msg.To, err)
		}
	})
}

// Close drains queued mail and stops the pool.
func (d *Dispatcher) Close() {
	d.pool.StopWait()
}

const defaultWorkers = 4

// NewFromEnv builds a Dispatcher from MAIL_BACKEND and the SMTP_* variables.
// Anything other than MAIL_BACKEND=smtp falls back to the console backend.
func NewFromEnv() *Dispatcher {
	if os.Getenv("MAIL_BACKEND") != "smtp" {
		return NewDispatcher(ConsoleSender{}, defaultWorkers)
	}

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))

	if err != nil {
		port = 587
	}

	sender := NewSMTPSender(
		os.Getenv("SMTP_HOST"),
		port,
		os.Getenv("SMTP_USERNAME"),
		os.Getenv("SMTP_PASSWORD"),
		os.Getenv("MAIL_FROM"),
	)

	return NewDispatcher(sender, defaultWorkers)
}
