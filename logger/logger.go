// Package logger hands out the process-wide structured logger.
package logger

import (
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	once sync.Once
	log  *logrus.Logger
)

// GetProjectLogger returns the shared logger, creating it on first use.
func GetProjectLogger() *logrus.Logger {
	once.Do(func() {
		log = logrus.New()
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	})
	return log
}
