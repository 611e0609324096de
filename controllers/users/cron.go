package users

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joaovbraz/mmn-invest-backend/logging"
	"github.com/joaovbraz/mmn-invest-backend/utils"
)

// POST /cron/daily-yields
// Protected by the X-CRON-KEY header. The sweep runs in the background so the
// caller is acknowledged before slow days finish.
func (c *Controller) CronDailyYields(w http.ResponseWriter, r *http.Request) {
	key := r.Header.Get("X-CRON-KEY")
	if key == "" || key != os.Getenv("CRON_KEY") {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		summary, err := c.Yields.ProcessDailyYields(ctx)
		if err != nil {
			logging.Sugar().Errorf("cron daily yields: %v", err)
			return
		}
		logging.Sugar().Infof("cron daily yields: paid=%d matured=%d errors=%d weekend=%v",
			summary.YieldsPaid, summary.InvestmentsMatured, summary.Errors, summary.Weekend)
	}()

	utils.WriteJSON(w, http.StatusAccepted, utils.APIResponse{Success: true, Message: "Processamento de rendimentos iniciado"})
}
