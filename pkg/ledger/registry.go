package ledger

import (
	"strings"

	"github.com/agentstation/boxoffice/pkg/errors"
	"github.com/agentstation/boxoffice/pkg/ordered"
)

// ClientSpec describes a client at bootstrap time.
type ClientSpec struct {
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
}

// Registry is the set of clients ordered by last name, then first name.
type Registry struct {
	clients *ordered.List[*Client]
}

// NewRegistry builds a registry from specs. Both names are required and no
// two clients may share a full name.
func NewRegistry(specs []ClientSpec) (*Registry, error) {
	r := &Registry{
		clients: ordered.New(ClientDisplayOrder, ClientIdentityEquals, ordered.WithCapacity[*Client](len(specs))),
	}

	for _, spec := range specs {
		first := strings.TrimSpace(spec.FirstName)
		last := strings.TrimSpace(spec.LastName)
		if first == "" || last == "" {
			return nil, errors.NewValidationError("name", spec, "client needs a first and last name")
		}
		client := newClient(first, last)
		if r.clients.Contains(client) {
			return nil, errors.NewAlreadyExistsError("client", client.FullName())
		}
		r.clients.Insert(client)
	}

	return r, nil
}

// FindByFullName returns the client with the given first and last name.
func (r *Registry) FindByFullName(first, last string) (*Client, bool) {
	return r.clients.Find(func(c *Client) bool {
		return c.firstName == first && c.lastName == last
	})
}

// FindByDisplayName returns the client whose FullName equals fullName.
func (r *Registry) FindByDisplayName(fullName string) (*Client, bool) {
	return r.clients.Find(func(c *Client) bool {
		return c.FullName() == fullName
	})
}

// Clients returns the clients in registry order.
func (r *Registry) Clients() []*Client {
	return r.clients.Items()
}

// Len returns the number of clients.
func (r *Registry) Len() int {
	return r.clients.Len()
}

// contains reports whether client is this registry's own entry.
func (r *Registry) contains(client *Client) bool {
	found, ok := r.FindByFullName(client.firstName, client.lastName)
	return ok && found == client
}
