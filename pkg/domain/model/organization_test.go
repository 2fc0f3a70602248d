package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/model"
	"github.com/isabella232/infrastructure-boxer/pkg/domain/types"
)

func TestEnsurePersonIdentity(t *testing.T) {
	org := model.NewOrganization()

	first, created := org.EnsurePerson("humbedooh")
	gt.V(t, created).Equal(true)

	second, created := org.EnsurePerson("humbedooh")
	gt.V(t, created).Equal(false)
	gt.V(t, first == second).Equal(true)
}

func TestAddProjectFirstSeenWins(t *testing.T) {
	org := model.NewOrganization()

	first := org.AddProject("foo")
	first.Committers = append(first.Committers, model.NewPerson("a"))

	again := org.AddProject("foo")
	gt.V(t, first == again).Equal(true)
	gt.A(t, again.Committers).Length(1)

	gt.V(t, org.AddProject("")).Nil()
}

func TestAddRepositoryFanOut(t *testing.T) {
	org := model.NewOrganization()
	project := org.AddProject("foo")

	alice, _ := org.EnsurePerson("alice")
	bob, _ := org.EnsurePerson("bob")
	project.Committers = []*model.Person{alice, bob}
	project.Owners = []*model.Person{alice}

	project.AddRepository(model.NewManagedRepository("foo-site.git", false))
	project.AddRepository(model.NewManagedRepository("foo-private.git", true))

	gt.A(t, project.PublicRepos).Length(1)
	gt.A(t, project.PrivateRepos).Length(1)

	hasRepo := func(p *model.Person, name string) bool {
		_, ok := p.Repositories[name]
		return ok
	}
	gt.V(t, hasRepo(alice, "foo-site")).Equal(true)
	gt.V(t, hasRepo(alice, "foo-private")).Equal(true)
	gt.V(t, hasRepo(bob, "foo-site")).Equal(true)
	gt.V(t, hasRepo(bob, "foo-private")).Equal(false)
}

func TestDesiredLoginsMFAGate(t *testing.T) {
	project := &model.Project{Key: "foo"}

	withMFA := model.NewPerson("a")
	withMFA.Link(&model.IdentityLink{ASFID: "a", GitHubLogin: "gh-a", MFA: true})

	noMFA := model.NewPerson("b")
	noMFA.Link(&model.IdentityLink{ASFID: "b", GitHubLogin: "gh-b", MFA: false})

	unlinked := model.NewPerson("c")

	project.Committers = []*model.Person{withMFA, noMFA, unlinked}

	gt.A(t, project.DesiredCommitterLogins()).Equal([]types.GitHubLogin{"gh-a"})
	gt.A(t, project.DesiredOwnerLogins()).Length(0)
}
