package xatadb

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/xatadb/xatadb.go/pkg/constants"
)

// Host applications typically construct one client per database and
// reuse it across request handlers. The registry gives such hosts a
// place to share named instances without threading them through every
// call site.
var registry = struct {
	sync.RWMutex
	clients map[string]*Client
}{clients: make(map[string]*Client)}

// RegisterConnection shares client under name. Registering the same
// name twice is an error; use UnregisterConnection first to replace.
func RegisterConnection(name string, client *Client) error {
	if name == "" {
		return validationErrorf("connection name must not be empty")
	}
	if client == nil {
		return validationErrorf("client must not be nil")
	}

	registry.Lock()
	defer registry.Unlock()

	if _, ok := registry.clients[name]; ok {
		return errors.Wrapf(constants.ErrConnectionInUse, "name: %s", name)
	}
	registry.clients[name] = client
	return nil
}

// Connection returns the client registered under name.
func Connection(name string) (*Client, error) {
	registry.RLock()
	defer registry.RUnlock()

	client, ok := registry.clients[name]
	if !ok {
		return nil, errors.Wrapf(constants.ErrNoConnection, "name: %s", name)
	}
	return client, nil
}

// DefaultConnection returns the client registered under the default
// name, for hosts that only ever hold one connection.
func DefaultConnection() (*Client, error) {
	return Connection(constants.DefaultConnectionName)
}

// UnregisterConnection removes the client registered under name, if
// any.
func UnregisterConnection(name string) {
	registry.Lock()
	defer registry.Unlock()
	delete(registry.clients, name)
}
