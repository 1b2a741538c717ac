package main

import (
	"os"

	"github.com/EduardoProfe666/tasas-cuba-sub000/internal/app"

	"github.com/sirupsen/logrus"
)

// @title           Tasas Cuba API
// @version         1.0
// @description     Daily Cuban informal-market exchange rate history and sync service.
// @BasePath        /api/v1
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Error("Application exited with error")
		os.Exit(1)
	}
}
