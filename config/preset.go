package config

import (
	"fmt"
	"sort"

	"github.com/viant/protodef/inspector"
)

// presets reproduce the vendor description layouts of the definitions repository
var presets = map[string]func() *Config{
	"silabs-bgapi": func() *Config {
		return &Config{
			Document: "../../perilib-definitions/silabs_bgapi.json",
			Sources: []*Source{
				{Protocol: "silabs-bgapi-ble-ble1xx", URL: "bleapi.xml", Format: inspector.BGAPI, Prefix: "ble"},
				{Protocol: "silabs-bgapi-ble-gecko", URL: "gecko.xml", Format: inspector.BGAPI, Prefix: "gecko"},
				{Protocol: "silabs-bgapi-dumo-bt121", URL: "dumoapi.xml", Format: inspector.BGAPI, Prefix: "dumo"},
				{Protocol: "silabs-bgapi-wifi-wf121", URL: "wifiapi-wf121.xml", Format: inspector.BGAPI, Prefix: "wifi121"},
				{Protocol: "silabs-bgapi-wifi-wgm110", URL: "wifiapi-wgm110.xml", Format: inspector.BGAPI, Prefix: "wifi110"},
			},
		}
	},
	"cypress-ezserial": func() *Config {
		return &Config{
			Document: "../../perilib-definitions/cypress_ezserial.json",
			Sources: []*Source{
				{Protocol: "cypress-ezserial", URL: "ezsapi.json", Format: inspector.EZSerial, Prefix: "ezs"},
			},
		}
	},
}

// Preset returns a copy of a built-in configuration
func Preset(name string) (*Config, error) {
	preset, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset: %q (available: %v)", name, Presets())
	}
	return preset(), nil
}

// Presets returns sorted built-in preset names
func Presets() []string {
	ret := make([]string, 0, len(presets))
	for name := range presets {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}
