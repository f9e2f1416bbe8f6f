package main

import (
	"blood-donation-backend/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

func main() {
	app, err := bootstrap.New()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to start blood donation backend")
	}

	app.Run()
}
