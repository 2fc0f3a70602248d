package ldapdir

import (
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/types"
)

// Override replaces parts of the standard group lookup for one project. The
// Members and Owners rosters are space separated account IDs; when both are
// set the directory is not queried at all.
type Override struct {
	LDAP       string `yaml:"ldap"`
	LDAPOwner  string `yaml:"ldap_owner"`
	MemberAttr string `yaml:"member_attr"`
	OwnerAttr  string `yaml:"owner_attr"`
	Members    string `yaml:"members"`
	Owners     string `yaml:"owners"`
}

func (x Override) MemberList() []types.ASFID {
	return splitIDs(x.Members)
}

func (x Override) OwnerList() []types.ASFID {
	return splitIDs(x.Owners)
}

func splitIDs(s string) []types.ASFID {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	ids := make([]types.ASFID, 0, len(fields))
	for _, field := range fields {
		ids = append(ids, types.ASFID(field))
	}
	return ids
}

type Overrides map[types.ProjectKey]Override

// LoadOverrides reads the per-project override table, conventionally kept in
// projects.yaml. A missing file is not an error; the table is just empty.
func LoadOverrides(path string) (Overrides, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Overrides{}, nil
		}
		return nil, goerr.Wrap(err, "failed to read override file", goerr.V("path", path))
	}

	var overrides Overrides
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return nil, goerr.Wrap(err, "failed to parse override file", goerr.V("path", path))
	}
	if overrides == nil {
		overrides = Overrides{}
	}
	return overrides, nil
}
