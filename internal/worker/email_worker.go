package worker

// email_worker.go
// Processes alert-email jobs from QueueEmail: license-expiry notices for the
// configured recipient, optionally with a generated PDF attached.

import (
	"context"
	"encoding/json"
	"errors"

	"parquetec/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path,omitempty"`
}

// EmailWorker sends alert emails through the SMTP mailer behind a circuit
// breaker, so a misbehaving relay does not pile up retries.
type EmailWorker struct {
	mailer *infra.Mailer
	cb     *infra.CircuitBreaker
}

func NewEmailWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker) *EmailWorker {
	return &EmailWorker{mailer: mailer, cb: cb}
}

// Process sends one alert email. A non-nil return makes the pool retry and
// eventually move the job to the DLQ.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return err
	}
	if payload.ToEmail == "" {
		return errors.New("email_worker: destinatario vacío")
	}

	err := w.cb.Execute(func() error {
		return w.mailer.SendAlerta(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath)
	})
	if err != nil {
		return err
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: alerta enviada")
	return nil
}
