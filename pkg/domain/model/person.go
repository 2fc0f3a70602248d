package model

import (
	"time"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/types"
)

// Person is one directory identity and everything attributed to it during a
// compilation pass. Identity is by ASFID only; the same object is enriched
// in place as more projects reference it.
type Person struct {
	ASFID       types.ASFID
	GitHubLogin types.GitHubLogin
	GitHubID    int64
	MFA         bool
	DisplayName string

	Repositories map[string]struct{}
	Projects     map[types.ProjectKey]struct{}
}

func NewPerson(id types.ASFID) *Person {
	return &Person{
		ASFID:        id,
		DisplayName:  "Unknown",
		Repositories: make(map[string]struct{}),
		Projects:     make(map[types.ProjectKey]struct{}),
	}
}

// Link applies the stored identity link to a freshly created person.
func (x *Person) Link(link *IdentityLink) {
	if link == nil {
		return
	}
	x.GitHubLogin = link.GitHubLogin
	x.GitHubID = link.GitHubID
	x.MFA = link.MFA
	if link.DisplayName != "" {
		x.DisplayName = link.DisplayName
	}
}

// IdentityLink is the persisted association between a directory identity and
// a GitHub account, keyed by ASFID.
type IdentityLink struct {
	ASFID       types.ASFID
	GitHubLogin types.GitHubLogin
	GitHubID    int64
	MFA         bool
	DisplayName string
	UpdatedAt   time.Time
}
