/*
 * HLR/AuC Configuration Factory
 */

package factory

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

var AucConfig *Config

// InitConfigFactory reads the yaml configuration at f into AucConfig.
func InitConfigFactory(f string) error {
	content, err := os.ReadFile(f)
	if err != nil {
		return errors.Wrapf(err, "read config [%s]", f)
	}

	AucConfig = &Config{}
	if yamlErr := yaml.Unmarshal(content, AucConfig); yamlErr != nil {
		return errors.Wrapf(yamlErr, "parse config [%s]", f)
	}

	return nil
}

func CheckConfigVersion() error {
	currentVersion := AucConfig.GetVersion()

	if currentVersion != AucExpectedConfigVersion {
		return errors.Errorf("config version is [%s], but the compatible version is [%s]",
			currentVersion, AucExpectedConfigVersion)
	}

	return nil
}
