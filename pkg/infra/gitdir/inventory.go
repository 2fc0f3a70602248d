package gitdir

import (
	"bufio"
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/interfaces"
	"github.com/isabella232/infrastructure-boxer/pkg/domain/model"
	"github.com/isabella232/infrastructure-boxer/pkg/domain/types"
	"github.com/isabella232/infrastructure-boxer/pkg/infra"
	"github.com/isabella232/infrastructure-boxer/pkg/utils/logging"
	"github.com/isabella232/infrastructure-boxer/pkg/utils/safe"
)

// Inventory lists the git repositories hosted on local disk: public bare
// repositories in one flat directory, private ones nested one level deep by
// project. An optional fallback URL contributes repositories still hosted on
// an older server, one name per line.
type Inventory struct {
	publicRoot  string
	privateRoot string
	fallbackURL string
	httpClient  infra.HTTPClient
}

var _ interfaces.Inventory = (*Inventory)(nil)

type Option func(*Inventory)

// WithFallbackURL adds a remote plain-text repository listing to the scan.
func WithFallbackURL(url string) Option {
	return func(x *Inventory) {
		x.fallbackURL = url
	}
}

func WithHTTPClient(client infra.HTTPClient) Option {
	return func(x *Inventory) {
		x.httpClient = client
	}
}

func New(publicRoot, privateRoot string, options ...Option) (*Inventory, error) {
	inv := &Inventory{
		publicRoot:  publicRoot,
		privateRoot: privateRoot,
		httpClient:  http.DefaultClient,
	}
	for _, opt := range options {
		opt(inv)
	}

	for _, root := range []string{inv.publicRoot, inv.privateRoot} {
		info, err := os.Stat(root)
		if err != nil {
			return nil, goerr.Wrap(err, "repository root is not accessible", goerr.V("root", root))
		}
		if !info.IsDir() {
			return nil, goerr.Wrap(types.ErrInvalidOption, "repository root is not a directory", goerr.V("root", root))
		}
	}

	return inv, nil
}

// ListAll scans both roots and the fallback listing. Unlike directory
// lookups, inventory failures are loud: a partial repository listing would
// make the reconciler tear members out of teams, so any error aborts the
// scan.
func (x *Inventory) ListAll(ctx context.Context) ([]*model.ManagedRepository, error) {
	var repositories []*model.ManagedRepository
	publicFound := 0
	privateFound := 0

	entries, err := os.ReadDir(x.publicRoot)
	if err != nil {
		return nil, goerr.Wrap(types.ErrInventoryUnavailable, "failed to scan public repository root",
			goerr.V("root", x.publicRoot), goerr.V("cause", err.Error()))
	}
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".git") {
			continue
		}
		publicFound++
		repositories = append(repositories, model.NewManagedRepository(
			filepath.Join(x.publicRoot, entry.Name()), false))
	}

	projects, err := os.ReadDir(x.privateRoot)
	if err != nil {
		return nil, goerr.Wrap(types.ErrInventoryUnavailable, "failed to scan private repository root",
			goerr.V("root", x.privateRoot), goerr.V("cause", err.Error()))
	}
	for _, project := range projects {
		if !project.IsDir() {
			continue
		}
		dir := filepath.Join(x.privateRoot, project.Name())
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, goerr.Wrap(types.ErrInventoryUnavailable, "failed to scan private project directory",
				goerr.V("dir", dir), goerr.V("cause", err.Error()))
		}
		for _, entry := range entries {
			if !strings.HasSuffix(entry.Name(), ".git") {
				continue
			}
			privateFound++
			repositories = append(repositories, model.NewManagedRepository(
				filepath.Join(dir, entry.Name()), true))
		}
	}

	if x.fallbackURL != "" {
		names, err := x.fetchFallback(ctx)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			publicFound++
			repositories = append(repositories, model.NewManagedRepository(name, false))
		}
	}

	logging.From(ctx).Info("located repositories",
		slog.Int("total", len(repositories)),
		slog.Int("public", publicFound),
		slog.Int("private", privateFound),
	)
	return repositories, nil
}

func (x *Inventory) fetchFallback(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, x.fallbackURL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build fallback request", goerr.V("url", x.fallbackURL))
	}

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(types.ErrInventoryUnavailable, "failed to fetch fallback repository listing",
			goerr.V("url", x.fallbackURL), goerr.V("cause", err.Error()))
	}
	defer safe.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.Wrap(types.ErrInventoryUnavailable, "fallback repository listing returned an error",
			goerr.V("url", x.fallbackURL), goerr.V("status", resp.StatusCode))
	}

	var names []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		if name := strings.TrimSpace(scanner.Text()); name != "" {
			names = append(names, name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, goerr.Wrap(types.ErrInventoryUnavailable, "failed to read fallback repository listing",
			goerr.V("url", x.fallbackURL), goerr.V("cause", err.Error()))
	}

	sort.Strings(names)
	return names, nil
}
