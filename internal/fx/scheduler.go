package fx

import (
	"context"
	"time"

	"Fluxo/internal/domain/budget"
	"Fluxo/internal/domain/recurring"
	"Fluxo/internal/logger"

	"go.uber.org/fx"
)

// SchedulerModule processa recorrências vencidas e renova metas recorrentes
// na subida da aplicação e depois uma vez por dia.
var SchedulerModule = fx.Module("scheduler",
	fx.Invoke(
		startScheduler,
	),
)

func startScheduler(
	lc fx.Lifecycle,
	recurringSvc *recurring.Service,
	budgetSvc *budget.Service,
) {
	done := make(chan struct{})

	runOnce := func(ctx context.Context) {
		now := time.Now()

		inserted, err := recurringSvc.ProcessDue(ctx, now)
		if err != nil {
			logger.Error().Err(err).Msg("Falha ao processar recorrências")
		} else if inserted > 0 {
			logger.Info().Int("inserted", inserted).Msg("Recorrências materializadas")
		}

		rolled, err := budgetSvc.RolloverRecurring(ctx, now)
		if err != nil {
			logger.Error().Err(err).Msg("Falha ao renovar metas recorrentes")
		} else if rolled > 0 {
			logger.Info().Int("created", rolled).Msg("Metas recorrentes renovadas")
		}
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				runOnce(context.Background())

				ticker := time.NewTicker(24 * time.Hour)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						runOnce(context.Background())
					case <-done:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(done)
			return nil
		},
	})
}
