package ldapdir

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/go-ldap/ldap/v3"
	"github.com/m-mizutani/goerr/v2"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/interfaces"
	"github.com/isabella232/infrastructure-boxer/pkg/domain/types"
	"github.com/isabella232/infrastructure-boxer/pkg/utils/logging"
)

const (
	defaultMemberAttr = "member"
	defaultOwnerAttr  = "owner"
)

// uidRe pulls the account ID out of a member DN such as
// "uid=humbedooh,ou=people,dc=apache,dc=org".
var uidRe = regexp.MustCompile(`^uid=([^,]+)`)

// Searcher is the slice of *ldap.Conn the directory client needs. Intended
// for tests.
type Searcher interface {
	Search(req *ldap.SearchRequest) (*ldap.SearchResult, error)
}

// Client resolves project committer and owner rosters from an LDAP
// directory, honoring per-project overrides loaded from a YAML file.
type Client struct {
	conn      Searcher
	closer    func() error
	groupBase string
	overrides Overrides
}

var _ interfaces.Directory = (*Client)(nil)

type config struct {
	conn      Searcher
	overrides Overrides
}

type Option func(*config)

// WithOverrides installs the per-project override table, usually loaded via
// LoadOverrides.
func WithOverrides(overrides Overrides) Option {
	return func(c *config) {
		c.overrides = overrides
	}
}

// WithSearcher replaces the LDAP connection. Intended for tests; New does
// not dial when a searcher is injected.
func WithSearcher(conn Searcher) Option {
	return func(c *config) {
		c.conn = conn
	}
}

// New dials the directory and binds with the given credentials. groupBase is
// a format string with a single %s placeholder for the project key, e.g.
// "cn=%s,ou=project,ou=groups,dc=apache,dc=org".
func New(uri, bindDN string, bindPW types.LDAPPassword, groupBase string, options ...Option) (*Client, error) {
	if !strings.Contains(groupBase, "%s") {
		return nil, goerr.Wrap(types.ErrInvalidOption, "group base must contain a %s placeholder for the project",
			goerr.V("groupBase", groupBase))
	}

	cfg := &config{}
	for _, opt := range options {
		opt(cfg)
	}

	client := &Client{
		conn:      cfg.conn,
		closer:    func() error { return nil },
		groupBase: groupBase,
		overrides: cfg.overrides,
	}

	if client.conn == nil {
		if uri == "" {
			return nil, goerr.Wrap(types.ErrInvalidOption, "LDAP URI is empty")
		}

		conn, err := ldap.DialURL(uri)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to dial LDAP server", goerr.V("uri", uri))
		}
		if err := conn.Bind(bindDN, string(bindPW)); err != nil {
			_ = conn.Close()
			return nil, goerr.Wrap(err, "failed to bind to LDAP server", goerr.V("bindDN", bindDN))
		}

		client.conn = conn
		client.closer = conn.Close
	}

	return client, nil
}

func (x *Client) Close() error {
	return x.closer()
}

// GetMembers resolves the committer and owner rosters for a project group.
// Overrides can redirect the group DN, rename the membership attributes, or
// hardcode the rosters outright; a hardcoded member roster is returned
// verbatim without querying the directory at all.
//
// Directory failures are soft: logged, and reported as empty rosters with a
// nil error, so one broken group never stalls a reconciliation cycle.
func (x *Client) GetMembers(ctx context.Context, project types.ProjectKey) ([]types.ASFID, []types.ASFID, error) {
	logger := logging.From(ctx)

	base := fmt.Sprintf(x.groupBase, project)
	ownerBase := ""
	memberAttr := defaultMemberAttr
	ownerAttr := defaultOwnerAttr

	var committers, owners []types.ASFID

	if override, ok := x.overrides[project]; ok {
		if override.LDAP != "" {
			base = override.LDAP
			logger.Info("using LDAP base override", slog.Any("project", project), slog.String("base", base))
		}
		if override.LDAPOwner != "" {
			ownerBase = override.LDAPOwner
			logger.Info("using LDAP owner base override", slog.Any("project", project), slog.String("base", ownerBase))
		}
		if override.MemberAttr != "" {
			memberAttr = override.MemberAttr
			logger.Info("using member attribute override", slog.Any("project", project), slog.String("attr", memberAttr))
		}
		if override.OwnerAttr != "" {
			ownerAttr = override.OwnerAttr
			logger.Info("using owner attribute override", slog.Any("project", project), slog.String("attr", ownerAttr))
		}
		committers = override.MemberList()
		owners = override.OwnerList()
	}

	// A hardcoded member roster short-circuits the directory entirely; the
	// owner roster is then whatever the override supplies, possibly nothing.
	if len(committers) > 0 {
		return committers, owners, nil
	}

	attrs := []string{memberAttr}
	if ownerAttr != memberAttr {
		attrs = append(attrs, ownerAttr)
	}

	entry, err := x.searchFirst(base, attrs)
	if err != nil {
		logger.Warn("directory lookup failed, treating project roster as empty",
			slog.Any("project", project), slog.String("base", base), slog.Any("error", err))
		return nil, nil, nil
	}

	if entry != nil {
		if len(committers) == 0 {
			committers = extractIDs(entry.GetAttributeValues(memberAttr))
		}
		if ownerBase == "" && len(owners) == 0 {
			owners = extractIDs(entry.GetAttributeValues(ownerAttr))
		}
	}

	if ownerBase != "" && len(owners) == 0 {
		entry, err := x.searchFirst(ownerBase, []string{ownerAttr})
		if err != nil {
			logger.Warn("directory owner lookup failed, treating owner roster as empty",
				slog.Any("project", project), slog.String("base", ownerBase), slog.Any("error", err))
			return nil, nil, nil
		}
		if entry != nil {
			owners = extractIDs(entry.GetAttributeValues(ownerAttr))
		}
	}

	sort.Slice(committers, func(i, j int) bool { return committers[i] < committers[j] })
	sort.Slice(owners, func(i, j int) bool { return owners[i] < owners[j] })

	return committers, owners, nil
}

// searchFirst runs a subtree search and returns the first entry, or nil when
// the group does not exist.
func (x *Client) searchFirst(base string, attrs []string) (*ldap.Entry, error) {
	req := ldap.NewSearchRequest(base,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 0, 0, false,
		"(objectClass=*)", attrs, nil)

	result, err := x.conn.Search(req)
	if err != nil {
		return nil, goerr.Wrap(err, "LDAP search failed", goerr.V("base", base))
	}
	if len(result.Entries) == 0 {
		return nil, nil
	}
	return result.Entries[0], nil
}

func extractIDs(values []string) []types.ASFID {
	var ids []types.ASFID
	for _, value := range values {
		if m := uidRe.FindStringSubmatch(value); m != nil {
			ids = append(ids, types.ASFID(m[1]))
		}
	}
	return ids
}
