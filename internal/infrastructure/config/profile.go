package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Cookie is a cookie record in a creation profile.
type Cookie struct {
	Domain string `yaml:"domain" toml:"domain"`
	Path   string `yaml:"path" toml:"path"`
	Name   string `yaml:"name" toml:"name"`
	Value  string `yaml:"value" toml:"value"`
}

// Profile holds default creation parameters for new web views.
type Profile struct {
	Settings                map[string]interface{} `yaml:"settings" toml:"settings"`
	JavascriptChannelNames  []string               `yaml:"javascriptChannelNames" toml:"javascriptChannelNames"`
	AutoMediaPlaybackPolicy *int                   `yaml:"autoMediaPlaybackPolicy" toml:"autoMediaPlaybackPolicy"`
	UserAgent               string                 `yaml:"userAgent" toml:"userAgent"`
	Cookies                 []Cookie               `yaml:"cookies" toml:"cookies"`
	InitialURL              string                 `yaml:"initialUrl" toml:"initialUrl"`
}

// LoadProfile reads a YAML or TOML profile, chosen by file extension.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var profile Profile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &profile)
	case ".toml":
		err = toml.Unmarshal(data, &profile)
	default:
		return nil, fmt.Errorf("unsupported profile format: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return &profile, nil
}

// Params converts the profile into creation parameters. Only fields that are
// set appear in the result.
func (p *Profile) Params() map[string]interface{} {
	params := make(map[string]interface{})
	if p == nil {
		return params
	}

	if len(p.Settings) > 0 {
		settings := make(map[string]interface{}, len(p.Settings))
		for k, v := range p.Settings {
			settings[k] = v
		}
		params["settings"] = settings
	}
	if len(p.JavascriptChannelNames) > 0 {
		names := make([]interface{}, 0, len(p.JavascriptChannelNames))
		for _, name := range p.JavascriptChannelNames {
			names = append(names, name)
		}
		params["javascriptChannelNames"] = names
	}
	if p.AutoMediaPlaybackPolicy != nil {
		params["autoMediaPlaybackPolicy"] = *p.AutoMediaPlaybackPolicy
	}
	if p.UserAgent != "" {
		params["userAgent"] = p.UserAgent
	}
	if len(p.Cookies) > 0 {
		cookies := make([]interface{}, 0, len(p.Cookies))
		for _, c := range p.Cookies {
			cookies = append(cookies, map[string]interface{}{
				"domain": c.Domain,
				"path":   c.Path,
				"name":   c.Name,
				"value":  c.Value,
			})
		}
		params["cookies"] = cookies
	}
	if p.InitialURL != "" {
		params["initialUrl"] = p.InitialURL
	}
	return params
}
