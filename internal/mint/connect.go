package mint

import (
	"context"
	"errors"

	"github.com/Mohsinsiddi/devmint/internal/gateway"
)

// Connector is the part of the gateway the page uses to connect.
type Connector interface {
	Connect(ctx context.Context) (*gateway.Session, error)
}

// Connect connects through c and records the outcome in store. A wrong
// network leaves the store disconnected with an alert set.
func Connect(ctx context.Context, c Connector, store *Store) (*gateway.Session, error) {
	session, err := c.Connect(ctx)
	if err != nil {
		var mismatch *gateway.ChainMismatchError
		if errors.As(err, &mismatch) {
			store.SetAlert("Change the network to " + mismatch.WantName())
		}
		return nil, err
	}
	store.SetSession(session)
	return session, nil
}
