package graceful

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// WaitForShutdown, SIGINT/SIGTERM gelene kadar bekler, ardından sunucuyu timeout
// içinde kapatır ve cancel ile arka plan işlerini durdurur.
func WaitForShutdown(app *fiber.App, timeout time.Duration, cancel context.CancelFunc) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	zap.L().Info("Shutting down...")
	if err := app.ShutdownWithTimeout(timeout); err != nil {
		zap.L().Error("Server shutdown failed", zap.Error(err))
	}
	cancel()
}
