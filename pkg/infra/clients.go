package infra

import (
	"net/http"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/interfaces"
)

// Clients bundles every external dependency of the sync engine.
type Clients struct {
	githubOrg  interfaces.GitHubOrg
	directory  interfaces.Directory
	inventory  interfaces.Inventory
	linkStore  interfaces.LinkStore
	httpClient HTTPClient
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{
		httpClient: http.DefaultClient,
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) GitHubOrg() interfaces.GitHubOrg {
	return x.githubOrg
}
func (x *Clients) Directory() interfaces.Directory {
	return x.directory
}
func (x *Clients) Inventory() interfaces.Inventory {
	return x.inventory
}
func (x *Clients) LinkStore() interfaces.LinkStore {
	return x.linkStore
}
func (x *Clients) HTTPClient() HTTPClient {
	return x.httpClient
}

func WithGitHubOrg(client interfaces.GitHubOrg) Option {
	return func(x *Clients) {
		x.githubOrg = client
	}
}

func WithDirectory(client interfaces.Directory) Option {
	return func(x *Clients) {
		x.directory = client
	}
}

func WithInventory(client interfaces.Inventory) Option {
	return func(x *Clients) {
		x.inventory = client
	}
}

func WithLinkStore(store interfaces.LinkStore) Option {
	return func(x *Clients) {
		x.linkStore = store
	}
}

func WithHTTPClient(client HTTPClient) Option {
	return func(x *Clients) {
		x.httpClient = client
	}
}
