package factory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `info:
  version: 1.0.0
  description: HLR/AuC test configuration

configuration:
  listener:
    network: unixgram
    address: /tmp/hlrauc-test.sock
  subscriberDb: ./subscribers.db

logger:
  enable: true
  level: debug
  reportCaller: false
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hlraucfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInitConfigFactory(t *testing.T) {
	require.NoError(t, InitConfigFactory(writeConfig(t, validConfig)))
	require.NotNil(t, AucConfig)

	require.NoError(t, CheckConfigVersion())

	ok, err := AucConfig.Validate()
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, "1.0.0", AucConfig.GetVersion())
	assert.Equal(t, "unixgram", AucConfig.Configuration.Listener.Network)
	assert.Equal(t, "/tmp/hlrauc-test.sock", AucConfig.Configuration.Listener.Address)
	assert.Equal(t, "./subscribers.db", AucConfig.Configuration.SubscriberDb)
	assert.Equal(t, "debug", AucConfig.GetLogLevel())
	assert.True(t, AucConfig.GetLogEnable())
	assert.False(t, AucConfig.GetLogReportCaller())
}

func TestInitConfigFactoryMissingFile(t *testing.T) {
	assert.Error(t, InitConfigFactory(filepath.Join(t.TempDir(), "nope.yaml")))
}

func TestInitConfigFactoryBadYaml(t *testing.T) {
	assert.Error(t, InitConfigFactory(writeConfig(t, "configuration: [")))
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{
			name: "missing listener address",
			config: `info:
  version: 1.0.0
configuration:
  listener:
    network: unixgram
  subscriberDb: ./subscribers.db
logger:
  enable: true
  level: info
`,
		},
		{
			name: "unsupported network",
			config: `info:
  version: 1.0.0
configuration:
  listener:
    network: tcp
    address: /tmp/hlrauc-test.sock
  subscriberDb: ./subscribers.db
logger:
  enable: true
  level: info
`,
		},
		{
			name: "missing subscriber db",
			config: `info:
  version: 1.0.0
configuration:
  listener:
    network: unixgram
    address: /tmp/hlrauc-test.sock
logger:
  enable: true
  level: info
`,
		},
		{
			name: "bad log level",
			config: `info:
  version: 1.0.0
configuration:
  listener:
    network: unixgram
    address: /tmp/hlrauc-test.sock
  subscriberDb: ./subscribers.db
logger:
  enable: true
  level: shouting
`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, InitConfigFactory(writeConfig(t, tc.config)))
			_, err := AucConfig.Validate()
			assert.Error(t, err)
		})
	}
}

func TestCheckConfigVersionMismatch(t *testing.T) {
	require.NoError(t, InitConfigFactory(writeConfig(t, `info:
  version: 0.9.0
configuration:
  listener:
    address: /tmp/hlrauc-test.sock
  subscriberDb: ./subscribers.db
logger:
  enable: true
  level: info
`)))
	assert.Error(t, CheckConfigVersion())
}
