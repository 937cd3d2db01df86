package controllers

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/cognitiondigest/digest-backend/pkg/logger"
)

func quietTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "controllers-test", Level: zerolog.Disabled, Output: io.Discard})
}
