// Package credentials resolves the API key, database URL and branch the
// client authenticates with. Resolution happens once, before any network
// use; the resulting triple is immutable.
package credentials

import (
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/xatadb/xatadb.go/pkg/constants"
)

// Credentials is the resolved triple every request is built from.
type Credentials struct {
	// APIKey is sent as the Authorization bearer token.
	APIKey string
	// DBURL is the database base URL, e.g.
	// https://workspace-1234.us-east-1.xata.sh/db/mydb
	DBURL string
	// Branch scopes data-plane requests. Defaults to "main".
	Branch string
}

// Provider is a read-only source of credential values. Lookup reports
// whether the key is present; empty values count as absent.
type Provider interface {
	Lookup(key string) (string, bool)
}

// Static serves credentials from a fixed map. Useful for tests and for
// hosts that resolve secrets themselves.
type Static map[string]string

func (s Static) Lookup(key string) (string, bool) {
	v, ok := s[key]
	if v == "" {
		return "", false
	}
	return v, ok
}

// Env reads credentials from process environment variables.
type Env struct{}

func (Env) Lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return "", false
	}
	return v, true
}

// Dotenv reads credentials from a .env-style secrets file. The file is
// parsed once when the provider is created.
type Dotenv struct {
	values map[string]string
}

// NewDotenv parses the secrets file at path.
func NewDotenv(path string) (*Dotenv, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read secrets file %s", path)
	}
	return &Dotenv{values: values}, nil
}

func (d *Dotenv) Lookup(key string) (string, bool) {
	v, ok := d.values[key]
	if v == "" {
		return "", false
	}
	return v, ok
}

// Chain tries each provider in order and returns the first hit.
type Chain []Provider

func (c Chain) Lookup(key string) (string, bool) {
	for _, p := range c {
		if v, ok := p.Lookup(key); ok {
			return v, true
		}
	}
	return "", false
}

// Resolve builds a Credentials triple from the given providers, consulted
// in order, with the process environment as the final fallback. The API
// key and database URL are required; the branch defaults to
// constants.DefaultBranch. The database URL must parse as http(s).
func Resolve(providers ...Provider) (Credentials, error) {
	chain := make(Chain, 0, len(providers)+1)
	chain = append(chain, providers...)
	chain = append(chain, Env{})

	creds := Credentials{}

	apiKey, ok := chain.Lookup(constants.EnvAPIKey)
	if !ok {
		return creds, errors.Wrap(constants.ErrNoAPIKey,
			"set "+constants.EnvAPIKey+" or supply it explicitly")
	}
	creds.APIKey = apiKey

	dbURL, ok := chain.Lookup(constants.EnvDBURL)
	if !ok {
		// Some hosts expose the url under the generic name instead.
		dbURL, ok = chain.Lookup(constants.EnvDatabaseURL)
	}
	if !ok {
		return creds, errors.Wrap(constants.ErrNoDBURL,
			"set "+constants.EnvDBURL+" or supply it explicitly")
	}
	creds.DBURL = strings.TrimRight(dbURL, "/")

	if branch, ok := chain.Lookup(constants.EnvBranch); ok {
		creds.Branch = branch
	} else {
		creds.Branch = constants.DefaultBranch
	}

	return creds, creds.Validate()
}

// Validate checks the triple without touching the network.
func (c Credentials) Validate() error {
	if c.APIKey == "" {
		return constants.ErrNoAPIKey
	}
	if c.DBURL == "" {
		return constants.ErrNoDBURL
	}
	u, err := url.Parse(c.DBURL)
	if err != nil {
		return errors.Wrap(constants.ErrInvalidDBURL, err.Error())
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.Wrapf(constants.ErrInvalidDBURL, "got %q", c.DBURL)
	}
	return nil
}
