// cmd/recalc/main.go — Recalcula los totales de todas las cotizaciones
// activas a partir de sus items persistidos. Pensado para correr tras un
// cambio en la lógica de cálculo o una corrección de datos. Cada cotización
// conserva su propia base de retención.
// Uso: go run cmd/recalc/main.go
package main

import (
	"context"
	"os"
	"time"

	"cotizador/internal/config"
	"cotizador/internal/infra"
	"cotizador/internal/repository"
	"cotizador/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	cotizacionRepo := repository.NewCotizacionRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	zonaRepo := repository.NewZonaRepository(db)

	// No dispatcher: recalculation never regenerates PDFs on its own.
	svc := service.NewCotizacionService(cotizacionRepo, clienteRepo, zonaRepo, nil)

	n, err := svc.RecalcularTodas(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("recalculation failed")
	}
	log.Info().Int("cotizaciones", n).Msg("totales recalculados")
}
