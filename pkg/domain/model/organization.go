package model

import (
	"sort"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/types"
)

// Organization is the compiled graph of projects and people. It is rebuilt
// from scratch every cycle and never patched incrementally.
type Organization struct {
	People   map[types.ASFID]*Person
	Projects map[types.ProjectKey]*Project
}

func NewOrganization() *Organization {
	return &Organization{
		People:   make(map[types.ASFID]*Person),
		Projects: make(map[types.ProjectKey]*Project),
	}
}

// EnsurePerson returns the person for the given identity, creating it if
// this is the first project referencing it. The second return value reports
// whether the person was created by this call.
func (x *Organization) EnsurePerson(id types.ASFID) (*Person, bool) {
	if p, ok := x.People[id]; ok {
		return p, false
	}
	p := NewPerson(id)
	x.People[id] = p
	return p, true
}

// AddProject creates a project under the given key unless one exists
// already (first-seen wins within a compilation pass).
func (x *Organization) AddProject(key types.ProjectKey) *Project {
	if key == "" {
		return nil
	}
	if p, ok := x.Projects[key]; ok {
		return p
	}
	p := &Project{Key: key}
	x.Projects[key] = p
	return p
}

// SortedPeople returns all people ordered by ASF identity.
func (x *Organization) SortedPeople() []*Person {
	people := make([]*Person, 0, len(x.People))
	for _, p := range x.People {
		people = append(people, p)
	}
	sort.Slice(people, func(i, j int) bool { return people[i].ASFID < people[j].ASFID })
	return people
}

// SortedProjects returns all projects ordered by key.
func (x *Organization) SortedProjects() []*Project {
	projects := make([]*Project, 0, len(x.Projects))
	for _, p := range x.Projects {
		projects = append(projects, p)
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].Key < projects[j].Key })
	return projects
}
