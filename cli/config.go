package main

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path"

	"github.com/krancour/memberadmin/internal/file"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

type config struct {
	APIAddress string `json:"apiAddress"`
}

// getConfig returns the saved configuration. If none has been saved, it
// returns nil and no error.
func getConfig() (*config, error) {
	configFile, err := getConfigFile()
	if err != nil {
		return nil, err
	}
	if !file.Exists(configFile) {
		return nil, nil
	}
	configBytes, err := ioutil.ReadFile(configFile)
	if err != nil {
		return nil, errors.Wrapf(
			err,
			"error reading memberadmin config file at %s",
			configFile,
		)
	}
	config := &config{}
	if err := json.Unmarshal(configBytes, config); err != nil {
		return nil, errors.Wrapf(
			err,
			"error parsing memberadmin config file at %s",
			configFile,
		)
	}
	return config, nil
}

func saveConfig(config *config) error {
	memberadminHome, err := getMemberadminHome()
	if err != nil {
		return err
	}
	if _, err = os.Stat(memberadminHome); err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrapf(
				err,
				"error checking for existence of memberadmin home at %s",
				memberadminHome,
			)
		}
		// The directory doesn't exist-- create it
		if err = os.MkdirAll(memberadminHome, 0755); err != nil {
			return errors.Wrapf(
				err,
				"error creating memberadmin home at %s",
				memberadminHome,
			)
		}
	}
	configFile := path.Join(memberadminHome, "config")
	configBytes, err := json.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "error marshaling config")
	}
	if err := ioutil.WriteFile(configFile, configBytes, 0644); err != nil {
		return errors.Wrapf(err, "error writing to %s", configFile)
	}
	return nil
}

func deleteConfig() error {
	configFile, err := getConfigFile()
	if err != nil {
		return err
	}
	if !file.Exists(configFile) {
		return nil
	}
	if err := os.Remove(configFile); err != nil {
		return errors.Wrap(err, "error deleting configuration")
	}
	return nil
}

func getConfigFile() (string, error) {
	memberadminHome, err := getMemberadminHome()
	if err != nil {
		return "", err
	}
	return path.Join(memberadminHome, "config"), nil
}

func getMemberadminHome() (string, error) {
	homeDir, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "error locating user's home directory")
	}
	return path.Join(homeDir, ".memberadmin"), nil
}
