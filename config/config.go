// Package config reads the TOML file holding both accounts' credentials.
package config

import (
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spudtrooper/bilifollow/api"
)

const (
	DefaultFile = "config.toml"

	// DownloadSection holds the credential of the account whose followings are exported.
	DownloadSection = "download_credential"
	// AutoFollowSection holds the credential of the account that replays the follows.
	AutoFollowSection = "auto_follow_credential"
)

type CredentialConfig struct {
	SessData string `toml:"sessdata"`
	BiliJct  string `toml:"bili_jct"`
	Buvid3   string `toml:"buvid3"`
	UID      int64  `toml:"uid"`
}

// Duration decodes TOML strings such as "3s" or "1m30s". A key that is
// present, even "0s", counts as set.
type Duration struct {
	time.Duration
	set bool
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	d.set = true
	return nil
}

func (d Duration) IsSet() bool { return d.set }

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type Settings struct {
	FollowingsFile string   `toml:"followings_file"`
	PagePause      Duration `toml:"page_pause"`
	FollowPause    Duration `toml:"follow_pause"`
	RetryPause     Duration `toml:"retry_pause"`
	FollowRetries  int      `toml:"follow_retries"`
	CheckRelation  bool     `toml:"check_relation"`
}

type Config struct {
	Download   CredentialConfig `toml:"download_credential"`
	AutoFollow CredentialConfig `toml:"auto_follow_credential"`
	Settings   Settings         `toml:"settings"`

	path string
}

func (c *Config) Path() string { return c.path }

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Errorf("config file %s not found", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return Parse(path, b)
}

// Parse decodes b; path is only used in error messages.
func Parse(path string, b []byte) (*Config, error) {
	var res Config
	if err := toml.Unmarshal(b, &res); err != nil {
		var de *toml.DecodeError
		if errors.As(err, &de) {
			row, col := de.Position()
			return nil, errors.Errorf("parsing %s at line %d column %d: %v", path, row, col, de)
		}
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	res.path = path
	return &res, nil
}

func (c *Config) section(name string) (CredentialConfig, error) {
	switch name {
	case DownloadSection:
		return c.Download, nil
	case AutoFollowSection:
		return c.AutoFollow, nil
	}
	return CredentialConfig{}, errors.Errorf("unknown credential section %q", name)
}

// Credential returns the validated credential stored under the named section.
func (c *Config) Credential(name string) (api.Credential, error) {
	sec, err := c.section(name)
	if err != nil {
		return api.Credential{}, err
	}
	var missing []string
	if sec.SessData == "" {
		missing = append(missing, "sessdata")
	}
	if sec.BiliJct == "" {
		missing = append(missing, "bili_jct")
	}
	if sec.UID == 0 {
		missing = append(missing, "uid")
	}
	if len(missing) > 0 {
		return api.Credential{}, errors.Errorf("%s: [%s] is missing %v; fill in valid values", c.path, name, missing)
	}
	return api.Credential{
		SessData: sec.SessData,
		BiliJct:  sec.BiliJct,
		Buvid3:   sec.Buvid3,
		UID:      sec.UID,
	}, nil
}
