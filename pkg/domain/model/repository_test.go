package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/model"
	"github.com/isabella232/infrastructure-boxer/pkg/domain/types"
)

func TestProjectKeyExtraction(t *testing.T) {
	cases := []struct {
		path    string
		project types.ProjectKey
	}{
		{"foo-site.git", "foo"},
		{"/x1/repos/asf/foo-site.git", "foo"},
		{"incubator-foo-site.git", "foo"},
		{"incubator-brpc.git", "brpc"},
		{"empire-db.git", "empire-db"},
		{"empire-db-site.git", "empire-db"},
		{"incubator-empire-db-site.git", "empire-db"},
		{"httpd.git", "httpd"},
		{"tomcat-native.git", "tomcat"},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			repo := model.NewManagedRepository(tc.path, false)
			gt.V(t, repo.Project).Equal(tc.project)
		})
	}
}

func TestManagedRepositoryName(t *testing.T) {
	repo := model.NewManagedRepository("/x1/repos/private/foo/foo-secret.git", true)
	gt.V(t, repo.Name).Equal("foo-secret")
	gt.V(t, repo.Private).Equal(true)
	gt.V(t, repo.Project).Equal(types.ProjectKey("foo"))
}

func TestProjectKeyStability(t *testing.T) {
	// repeated extraction from the same name must not drift
	first := model.NewManagedRepository("incubator-foo-site.git", false)
	second := model.NewManagedRepository("incubator-foo-site.git", false)
	gt.V(t, first.Project).Equal(second.Project)
}
