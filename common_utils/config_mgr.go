package common_utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/golang/glog"
	"gopkg.in/yaml.v2"
)

// ErrMissingConfig is returned when a key is neither in the config file
// nor in the default map.
var ErrMissingConfig = errors.New("missing config entry")

// ConfigMgr resolves configuration items from a JSON or YAML file with
// fallback to a caller supplied default map. A missing or unparseable
// file is tolerated; lookups then resolve against the defaults only.
type ConfigMgr struct {
	fileItems map[string]string
	defaults  map[string]string
}

// NewConfigMgr loads cfgFileName, choosing the parser by file extension
// (.yaml/.yml for YAML, JSON otherwise).
func NewConfigMgr(cfgFileName string, defaults map[string]string) *ConfigMgr {
	c := &ConfigMgr{
		fileItems: make(map[string]string),
		defaults:  defaults,
	}

	data, err := os.ReadFile(cfgFileName)
	if err != nil {
		log.V(2).Infof("Config file %s not read: %v, using defaults", cfgFileName, err)
		return c
	}

	switch strings.ToLower(filepath.Ext(cfgFileName)) {
	case ".yaml", ".yml":
		var items map[interface{}]interface{}
		if err := yaml.Unmarshal(data, &items); err != nil {
			log.Warningf("Config file %s not parseable: %v, using defaults", cfgFileName, err)
			return c
		}
		for k, v := range items {
			c.fileItems[fmt.Sprint(k)] = fmt.Sprint(v)
		}
	default:
		var items map[string]interface{}
		if err := json.Unmarshal(data, &items); err != nil {
			log.Warningf("Config file %s not parseable: %v, using defaults", cfgFileName, err)
			return c
		}
		for k, v := range items {
			c.fileItems[k] = fmt.Sprint(v)
		}
	}
	return c
}

// GetItem retrieves the config entry for key, preferring the file
// contents over the defaults.
func (c *ConfigMgr) GetItem(key string) (string, error) {
	if v, ok := c.fileItems[key]; ok {
		return v, nil
	}
	if v, ok := c.defaults[key]; ok {
		return v, nil
	}
	return "", fmt.Errorf("Key [%s] not found: %w", key, ErrMissingConfig)
}
