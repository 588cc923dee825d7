package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/telcosim/hlrauc/internal/logger"
	"github.com/telcosim/hlrauc/pkg/service"
)

var AUC = &service.AUC{}

func main() {
	app := cli.NewApp()
	app.Name = "hlrauc"
	app.Usage = "HLR / Authentication Center"
	app.Action = action
	app.Flags = AUC.GetCliCmd()
	if err := app.Run(os.Args); err != nil {
		logger.AppLog.Errorf("HLRAUC Run error: %v", err)
		os.Exit(1)
	}
}

func action(c *cli.Context) error {
	if err := AUC.Initialize(c); err != nil {
		logger.CfgLog.Errorf("%+v", err)
		return err
	}

	return AUC.Start()
}
