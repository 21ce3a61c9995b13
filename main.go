package main

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logf := LoggingFormat{
			Type:    LogType.Startup,
			Level:   logrus.DebugLevel,
			Message: "Error loading .env file. Using existing environment variables.",
		}
		logf.Print()
	}

	if err := newRootCmd(nil).Execute(); err != nil {
		if !errors.Is(err, errIncompatible) {
			logf := LoggingFormat{
				Type:    LogType.CLI,
				Level:   logrus.ErrorLevel,
				Message: "Command failed",
				Error:   err,
			}
			logf.Print()
		}
		os.Exit(1)
	}
}
