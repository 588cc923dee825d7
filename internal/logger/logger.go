package logger

import (
	"time"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
)

var (
	log       *logrus.Logger
	AppLog    *logrus.Entry
	InitLog   *logrus.Entry
	CfgLog    *logrus.Entry
	CtxLog    *logrus.Entry
	StoreLog  *logrus.Entry
	AuthLog   *logrus.Entry
	ServerLog *logrus.Entry
)

func init() {
	log = logrus.New()
	log.SetReportCaller(false)

	log.Formatter = &formatter.Formatter{
		TimestampFormat: time.RFC3339,
		TrimMessages:    true,
		NoFieldsSpace:   true,
		HideKeys:        true,
		FieldsOrder:     []string{"component", "category"},
	}

	AppLog = log.WithFields(logrus.Fields{"component": "HLRAUC", "category": "App"})
	InitLog = log.WithFields(logrus.Fields{"component": "HLRAUC", "category": "Init"})
	CfgLog = log.WithFields(logrus.Fields{"component": "HLRAUC", "category": "CFG"})
	CtxLog = log.WithFields(logrus.Fields{"component": "HLRAUC", "category": "ctx"})
	StoreLog = log.WithFields(logrus.Fields{"component": "HLRAUC", "category": "Store"})
	AuthLog = log.WithFields(logrus.Fields{"component": "HLRAUC", "category": "Auth"})
	ServerLog = log.WithFields(logrus.Fields{"component": "HLRAUC", "category": "Server"})
}

func SetLogLevel(level logrus.Level) {
	log.SetLevel(level)
}

func SetReportCaller(enable bool) {
	log.SetReportCaller(enable)
}
