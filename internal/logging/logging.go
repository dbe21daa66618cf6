// Package logging builds the logrus logger used by the binaries.
package logging

import (
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/pdrpinto/gridastar/internal/config"
)

// New returns a logger writing to out with the level and formatter from cfg.
// cfg is expected to have passed config.Validate.
func New(cfg config.LogConfig, out io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	logger := log.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	if strings.EqualFold(cfg.Format, "json") {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}
