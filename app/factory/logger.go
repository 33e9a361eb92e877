package factory

import (
	"io"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

func NewModuleLogger(module string) logrus.FieldLogger {
	return logrus.WithField("module", module)
}

func LoggerWithContext(logger logrus.FieldLogger, ctx echo.Context) logrus.FieldLogger {
	requestID := ctx.Request().Header.Get(echo.HeaderXRequestID)
	if requestID == "" {
		return logger
	}
	return logger.WithField("request_id", requestID)
}

// NewSweeperLogger builds the sweeper's structured logger: JSON lines
// written to stdout and appended to sweeper.log under the data directory.
// The returned closer owns the log file.
func NewSweeperLogger(dataDir string) (logrus.FieldLogger, io.Closer, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, nil, err
	}

	file, err := os.OpenFile(filepath.Join(dataDir, "sweeper.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(io.MultiWriter(os.Stdout, file))

	return logger.WithField("service", "payment-verifier"), file, nil
}
