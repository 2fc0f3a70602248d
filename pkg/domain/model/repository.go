package model

import (
	"path"
	"regexp"
	"strings"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/types"
)

// projectKeyRe strips the incubator prefix and takes the leading dash
// delimited token. empire-db is the one project whose name itself contains
// a dash, so it is matched verbatim.
var projectKeyRe = regexp.MustCompile(`^(?:incubator-)?(empire-db|[^-.]+)-?.*$`)

// ManagedRepository is a single git repository hosted by the organization.
// Immutable once constructed.
type ManagedRepository struct {
	Name    string
	Path    string
	Private bool
	Project types.ProjectKey
}

// NewManagedRepository derives the repository name and project key from a
// filesystem path (or bare repository name from a fallback listing).
func NewManagedRepository(filepath string, private bool) *ManagedRepository {
	name := strings.TrimSuffix(path.Base(filepath), ".git")

	repo := &ManagedRepository{
		Name:    name,
		Path:    filepath,
		Private: private,
	}

	if m := projectKeyRe.FindStringSubmatch(name); m != nil {
		repo.Project = types.ProjectKey(m[1])
	} else {
		repo.Project = types.ProjectKey(strings.SplitN(name, "-", 2)[0])
	}

	return repo
}
