package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/gestorcrm/quotes-api/internal/service"
)

const reconcileJobName = "reconciliation"

// RegisterReconcileJob schedules the consistency repair pass.
func RegisterReconcileJob(scheduler *Scheduler, svc *service.ReconciliationService, cronExpr string, logger *zap.Logger) error {
	return scheduler.AddJob(reconcileJobName, cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		report, err := svc.Run(ctx)
		if err != nil {
			logger.Error("Reconciliation job failed", zap.Error(err))
			return
		}
		logger.Info("Reconciliation job finished",
			zap.Int("detached_products", report.DetachedProducts),
			zap.Int("rejected_quotes", report.RejectedQuotes),
		)
	})
}
