package main

import (
	"github.com/skillctl/skillctl/pkg/skills"
	"github.com/spf13/viper"
)

// newDiscovery builds a Discovery honoring the --registry flag and the
// registries config key, falling back to the default roots.
func newDiscovery() (*skills.Discovery, error) {
	if dirs := viper.GetStringSlice("registries"); len(dirs) > 0 {
		return skills.NewDiscovery(skills.WithRegistryDirs(dirs...))
	}
	return skills.NewDiscovery()
}
