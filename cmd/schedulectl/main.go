package main

import (
	"os"
	"time"
	_ "time/tzdata"

	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/cli"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.SetOutput(os.Stderr)

	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
