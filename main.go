package main

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/trackyourtime/tracky/internal/cli"
	"github.com/trackyourtime/tracky/internal/utils"
)

func init() {
	level := os.Getenv("LOG_LEVEL")
	if level != "" {
		logrusLevel, err := log.ParseLevel(level)
		if err != nil {
			log.Fatal(err)
		}
		log.SetLevel(logrusLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func main() {
	if err := cli.NewRootCommand(utils.SystemClock{}).ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}
