package worker

// vencimientos.go
// Barrido periódico de licencias próximas a vencer. Por cada licencia dentro
// de la ventana publica un evento en el canal de notificaciones y encola un
// correo de alerta para el responsable de inventario.

import (
	"context"
	"fmt"
	"strings"
	"time"

	"parquetec/internal/model"
	"parquetec/internal/repository"
	"parquetec/internal/service"

	"github.com/rs/zerolog/log"
)

// VencimientoEvento es el mensaje publicado en NotifChannel.
type VencimientoEvento struct {
	LicenciaID       string `json:"licencia_id"`
	Software         string `json:"software"`
	Version          string `json:"version,omitempty"`
	FechaVencimiento string `json:"fecha_vencimiento"`
	DiasRestantes    int    `json:"dias_restantes"`
}

// VencimientosCron escanea las licencias por vencer y despacha alertas.
type VencimientosCron struct {
	softwareRepo repository.SoftwareRepository
	dispatcher   *Dispatcher
	alertEmail   string
	interval     time.Duration
	now          func() time.Time
}

func NewVencimientosCron(softwareRepo repository.SoftwareRepository, dispatcher *Dispatcher, alertEmail string, interval time.Duration) *VencimientosCron {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &VencimientosCron{
		softwareRepo: softwareRepo,
		dispatcher:   dispatcher,
		alertEmail:   alertEmail,
		interval:     interval,
		now:          time.Now,
	}
}

// Start runs the sweep loop until ctx is cancelled. The first sweep happens
// immediately so a restart never skips a day.
func (c *VencimientosCron) Start(ctx context.Context) {
	go func() {
		c.sweep(ctx)

		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("vencimientos: cron shutting down")
				return
			case <-ticker.C:
				c.sweep(ctx)
			}
		}
	}()
	log.Info().Dur("interval", c.interval).Msg("vencimientos: cron started")
}

func (c *VencimientosCron) sweep(ctx context.Context) {
	ahora := c.now()
	hasta := ahora.Add(service.VentanaPorVencer)

	licencias, err := c.softwareRepo.ListLicenciasPorVencer(ctx, hasta)
	if err != nil {
		log.Error().Err(err).Msg("vencimientos: sweep query failed")
		return
	}
	if len(licencias) == 0 {
		log.Debug().Msg("vencimientos: sin licencias por vencer")
		return
	}

	eventos := make([]VencimientoEvento, 0, len(licencias))
	for _, l := range licencias {
		eventos = append(eventos, c.buildEvento(ctx, l, ahora))
	}

	for _, ev := range eventos {
		if err := c.dispatcher.PublishVencimiento(ctx, ev); err != nil {
			log.Error().Err(err).Str("licencia", ev.LicenciaID).Msg("vencimientos: publish failed")
		}
	}

	if c.alertEmail == "" {
		return
	}
	payload := EmailJobPayload{
		ToEmail: c.alertEmail,
		Subject: fmt.Sprintf("Licencias por vencer: %d", len(eventos)),
		Body:    resumenVencimientos(eventos),
	}
	if err := c.dispatcher.EnqueueEmail(ctx, payload); err != nil {
		log.Error().Err(err).Msg("vencimientos: enqueue email failed")
	}
}

func (c *VencimientosCron) buildEvento(ctx context.Context, l model.SoftwareLicencia, ahora time.Time) VencimientoEvento {
	ev := VencimientoEvento{
		LicenciaID:       l.ID.String(),
		FechaVencimiento: l.FechaVencimiento.Format("2006-01-02"),
		DiasRestantes:    int(l.FechaVencimiento.Sub(ahora).Hours() / 24),
	}
	if sw, err := c.softwareRepo.FindByID(ctx, l.SoftwareID); err == nil {
		ev.Software = sw.Nombre
		ev.Version = sw.Version
	}
	return ev
}

func resumenVencimientos(eventos []VencimientoEvento) string {
	var b strings.Builder
	b.WriteString("Las siguientes licencias vencen dentro de los próximos 30 días:\n\n")
	for _, ev := range eventos {
		fmt.Fprintf(&b, " - %s %s: vence %s (%d días)\n", ev.Software, ev.Version, ev.FechaVencimiento, ev.DiasRestantes)
	}
	return b.String()
}
