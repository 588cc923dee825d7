package service

import (
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	auc_context "github.com/telcosim/hlrauc/internal/context"
	"github.com/telcosim/hlrauc/internal/logger"
	"github.com/telcosim/hlrauc/internal/server"
	"github.com/telcosim/hlrauc/internal/subscriber"
	"github.com/telcosim/hlrauc/pkg/factory"
)

type AUC struct{}

type (
	// Commands information.
	Commands struct {
		config string
	}
)

var commands Commands

var cliCmd = []cli.Flag{
	cli.StringFlag{
		Name:  "config, c",
		Usage: "Load configuration from `FILE`",
	},
}

func (*AUC) GetCliCmd() (flags []cli.Flag) {
	return cliCmd
}

func (auc *AUC) Initialize(c *cli.Context) error {
	commands = Commands{
		config: c.String("config"),
	}

	if commands.config != "" {
		if err := factory.InitConfigFactory(commands.config); err != nil {
			return err
		}
	} else {
		if err := factory.InitConfigFactory(factory.AucDefaultConfigPath); err != nil {
			return err
		}
	}

	if err := factory.CheckConfigVersion(); err != nil {
		return err
	}

	if _, err := factory.AucConfig.Validate(); err != nil {
		return err
	}

	auc.SetLogLevel()

	return nil
}

func (auc *AUC) SetLogLevel() {
	if factory.AucConfig.Logger == nil {
		logger.InitLog.Warnln("HLR/AuC config without log level setting!!!")
		return
	}

	if factory.AucConfig.Logger.Level != "" {
		if level, err := logrus.ParseLevel(factory.AucConfig.Logger.Level); err != nil {
			logger.InitLog.Warnf("HLR/AuC Log level [%s] is invalid, set to [info] level",
				factory.AucConfig.Logger.Level)
			logger.SetLogLevel(logrus.InfoLevel)
		} else {
			logger.InitLog.Infof("HLR/AuC Log level is set to [%s] level", level)
			logger.SetLogLevel(level)
		}
	} else {
		logger.InitLog.Warnln("HLR/AuC Log level not set. Default set to [info] level")
		logger.SetLogLevel(logrus.InfoLevel)
	}
	logger.SetReportCaller(factory.AucConfig.Logger.ReportCaller)
}

func (auc *AUC) Start() error {
	logger.InitLog.Infoln("Server started")

	auc_context.Init()
	self := auc_context.GetSelf()
	logger.InitLog.Infof("instance [%s]", self.InstanceId)

	store, err := subscriber.Load(self.SubscriberDbPath)
	if err != nil {
		logger.InitLog.Errorf("Load subscriber db failed: %+v", err)
		return err
	}
	logger.InitLog.Infof("loaded %d subscriber records from [%s]", store.Len(), self.SubscriberDbPath)

	srv := server.New(self.Network, self.Address, store)
	if err := srv.Start(); err != nil {
		logger.InitLog.Errorf("Start server failed: %+v", err)
		return err
	}

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, os.Interrupt, syscall.SIGTERM)

	defer func() {
		if p := recover(); p != nil {
			// Print stack for panic to log. Fatalf() will let program exit.
			logger.InitLog.Fatalf("panic: %v\n%s", p, string(debug.Stack()))
		}
	}()

	<-signalChannel
	auc.Terminate(srv)
	return nil
}

func (auc *AUC) Terminate(srv *server.Server) {
	logger.InitLog.Infof("Terminating HLR/AuC...")
	if err := srv.Stop(); err != nil {
		logger.InitLog.Errorf("Stop server error: %+v", err)
	}
	logger.InitLog.Infof("HLR/AuC terminated")
}
