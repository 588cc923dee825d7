package context

import (
	"github.com/google/uuid"

	"github.com/telcosim/hlrauc/internal/logger"
	"github.com/telcosim/hlrauc/pkg/factory"
)

// AUCContext holds the process-lifetime runtime state derived from the
// configuration at startup.
type AUCContext struct {
	InstanceId       string
	Network          string
	Address          string
	SubscriberDbPath string
}

var aucContext AUCContext

func Init() {
	config := factory.AucConfig
	logger.CtxLog.Infof("hlraucfg Info: Version[%s] Description[%s]", config.Info.Version, config.Info.Description)

	configuration := config.Configuration
	listener := configuration.Listener

	aucContext.InstanceId = uuid.New().String()
	aucContext.Network = listener.Network
	if aucContext.Network == "" {
		aucContext.Network = factory.AucDefaultNetwork
	}
	aucContext.Address = listener.Address
	if aucContext.Address == "" {
		aucContext.Address = factory.AucDefaultAddress
	}
	aucContext.SubscriberDbPath = configuration.SubscriberDb
}

func GetSelf() *AUCContext {
	return &aucContext
}
