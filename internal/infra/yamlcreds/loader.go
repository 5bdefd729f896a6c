package yamlcreds

import (
	"errors"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/knockbot/knockbot/internal/domain"
	"github.com/knockbot/knockbot/internal/ports"
)

// Loader reads the four posting credentials from a YAML file:
//
//	consumer_key: ...
//	consumer_secret: ...
//	access_token: ...
//	access_token_secret: ...
//
// Unknown keys are ignored.
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

var _ ports.CredentialsLoader = (*Loader)(nil)

type yamlCredentials struct {
	ConsumerKey       string `yaml:"consumer_key"`
	ConsumerSecret    string `yaml:"consumer_secret"`
	AccessToken       string `yaml:"access_token"`
	AccessTokenSecret string `yaml:"access_token_secret"`
}

func (l *Loader) LoadCredentials(path string) (domain.Credentials, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, os.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return domain.Credentials{}, &domain.OpError{
			Op:   "yamlcreds.load",
			Kind: kind,
			Path: path,
			Err:  err,
		}
	}

	var y yamlCredentials
	if err := yaml.Unmarshal(b, &y); err != nil {
		return domain.Credentials{}, &domain.OpError{
			Op:   "yamlcreds.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	creds := domain.Credentials{
		ConsumerKey:       strings.TrimSpace(y.ConsumerKey),
		ConsumerSecret:    strings.TrimSpace(y.ConsumerSecret),
		AccessToken:       strings.TrimSpace(y.AccessToken),
		AccessTokenSecret: strings.TrimSpace(y.AccessTokenSecret),
	}

	if err := creds.Validate(); err != nil {
		var oe *domain.OpError
		if errors.As(err, &oe) {
			oe.Path = path
		}
		return domain.Credentials{}, err
	}

	return creds, nil
}
