//go:build tinygo || baremetal

package main

import "github.com/openpedal/pedallink/config"

func loadConfig() (config.Device, error) {
	return config.Resolve(), nil
}
