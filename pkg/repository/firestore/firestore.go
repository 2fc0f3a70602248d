package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/interfaces"
	"github.com/isabella232/infrastructure-boxer/pkg/domain/model"
	"github.com/isabella232/infrastructure-boxer/pkg/domain/types"
	"github.com/isabella232/infrastructure-boxer/pkg/repository"
)

const collectionLinks = "identity_links"

type linkStore struct {
	client *firestore.Client
}

type linkDoc struct {
	ASFID       string    `firestore:"asfid"`
	GitHubLogin string    `firestore:"github_login"`
	GitHubID    int64     `firestore:"github_id"`
	MFA         bool      `firestore:"mfa"`
	DisplayName string    `firestore:"display_name"`
	UpdatedAt   time.Time `firestore:"updated_at"`
}

// New creates a Firestore-backed identity-link store
func New(ctx context.Context, projectID, databaseID string) (interfaces.LinkStore, error) {
	var client *firestore.Client
	var err error

	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}

	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	return &linkStore{client: client}, nil
}

func (x *linkStore) Get(ctx context.Context, id types.ASFID) (*model.IdentityLink, error) {
	if id == "" {
		return nil, goerr.Wrap(repository.ErrInvalidInput, "ASF ID is empty")
	}

	snap, err := x.client.Collection(collectionLinks).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(repository.ErrNotFound, "no identity link", goerr.V("asfID", id))
		}
		return nil, goerr.Wrap(err, "failed to get identity link", goerr.V("asfID", id))
	}

	var doc linkDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode identity link", goerr.V("asfID", id))
	}

	return &model.IdentityLink{
		ASFID:       types.ASFID(doc.ASFID),
		GitHubLogin: types.GitHubLogin(doc.GitHubLogin),
		GitHubID:    doc.GitHubID,
		MFA:         doc.MFA,
		DisplayName: doc.DisplayName,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}

func (x *linkStore) Put(ctx context.Context, link *model.IdentityLink) error {
	if link == nil || link.ASFID == "" {
		return goerr.Wrap(repository.ErrInvalidInput, "identity link needs an ASF ID")
	}

	doc := linkDoc{
		ASFID:       string(link.ASFID),
		GitHubLogin: string(link.GitHubLogin),
		GitHubID:    link.GitHubID,
		MFA:         link.MFA,
		DisplayName: link.DisplayName,
		UpdatedAt:   time.Now(),
	}

	if _, err := x.client.Collection(collectionLinks).Doc(string(link.ASFID)).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to upsert identity link", goerr.V("asfID", link.ASFID))
	}

	return nil
}

func (x *linkStore) Close() error {
	return x.client.Close()
}
