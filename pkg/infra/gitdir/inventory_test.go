package gitdir_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/model"
	"github.com/isabella232/infrastructure-boxer/pkg/domain/types"
	"github.com/isabella232/infrastructure-boxer/pkg/infra/gitdir"
)

func setupRoots(t *testing.T) (string, string) {
	t.Helper()
	publicRoot := t.TempDir()
	privateRoot := t.TempDir()

	for _, name := range []string{"foo.git", "foo-site.git", "incubator-baz.git", "README"} {
		gt.NoError(t, os.Mkdir(filepath.Join(publicRoot, name), 0755))
	}
	gt.NoError(t, os.MkdirAll(filepath.Join(privateRoot, "foo", "foo-security.git"), 0755))
	gt.NoError(t, os.WriteFile(filepath.Join(privateRoot, "stray-file"), nil, 0600))

	return publicRoot, privateRoot
}

func byName(repos []*model.ManagedRepository) map[string]*model.ManagedRepository {
	m := make(map[string]*model.ManagedRepository, len(repos))
	for _, repo := range repos {
		m[repo.Name] = repo
	}
	return m
}

func TestListAll(t *testing.T) {
	publicRoot, privateRoot := setupRoots(t)

	inv := gt.R1(gitdir.New(publicRoot, privateRoot)).NoError(t)
	repos := gt.R1(inv.ListAll(context.Background())).NoError(t)

	gt.A(t, repos).Length(4)
	found := byName(repos)

	gt.V(t, found["foo"].Private).Equal(false)
	gt.V(t, found["foo"].Project).Equal(types.ProjectKey("foo"))

	gt.V(t, found["foo-site"].Project).Equal(types.ProjectKey("foo"))

	gt.V(t, found["incubator-baz"].Project).Equal(types.ProjectKey("baz"))

	gt.V(t, found["foo-security"].Private).Equal(true)
	gt.V(t, found["foo-security"].Project).Equal(types.ProjectKey("foo"))
}

func TestListAllWithFallback(t *testing.T) {
	publicRoot, privateRoot := setupRoots(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("zorro.git\nalpha.git\n\n"))
	}))
	defer srv.Close()

	inv := gt.R1(gitdir.New(publicRoot, privateRoot,
		gitdir.WithFallbackURL(srv.URL),
		gitdir.WithHTTPClient(http.DefaultClient),
	)).NoError(t)

	repos := gt.R1(inv.ListAll(context.Background())).NoError(t)
	gt.A(t, repos).Length(6)

	// fallback names are sorted before they are appended
	gt.V(t, repos[4].Name).Equal("alpha")
	gt.V(t, repos[5].Name).Equal("zorro")
	gt.V(t, repos[5].Private).Equal(false)
}

func TestListAllFallbackErrorIsLoud(t *testing.T) {
	publicRoot, privateRoot := setupRoots(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	inv := gt.R1(gitdir.New(publicRoot, privateRoot,
		gitdir.WithFallbackURL(srv.URL),
		gitdir.WithHTTPClient(http.DefaultClient),
	)).NoError(t)

	_, err := inv.ListAll(context.Background())
	gt.Error(t, err)
	gt.V(t, errors.Is(err, types.ErrInventoryUnavailable)).Equal(true)
}

func TestNewRequiresExistingRoots(t *testing.T) {
	_, err := gitdir.New(filepath.Join(t.TempDir(), "missing"), t.TempDir())
	gt.Error(t, err)
}
