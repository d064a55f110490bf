package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"onepager-generator/internal/domain"
)

const onePagerType = "one-pager"

// FirestoreHosted reads hosted one-pagers written by the profile editor.
type FirestoreHosted struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreClient creates a Firestore client for projectID.
func NewFirestoreClient(ctx context.Context, projectID string) (*firestore.Client, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}
	return client, nil
}

func NewFirestoreHosted(client *firestore.Client, collection string) *FirestoreHosted {
	return &FirestoreHosted{client: client, collection: collection}
}

func (f *FirestoreHosted) Get(ctx context.Context, id string) (*domain.HostedOnePager, error) {
	doc, err := f.client.Collection(f.collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrHostedNotFound
		}
		return nil, fmt.Errorf("failed to get hosted one-pager: %w", err)
	}
	return hostedFromDocument(doc.Ref.ID, doc.Data())
}

// hostedFromDocument maps a hostedResumes document. Documents of other
// résumé types share the collection and are reported as missing.
func hostedFromDocument(id string, data map[string]interface{}) (*domain.HostedOnePager, error) {
	if t, _ := data["resumeType"].(string); t != onePagerType {
		return nil, domain.ErrHostedNotFound
	}
	h := &domain.HostedOnePager{ID: id, Data: map[string]interface{}{}}
	h.UserID, _ = data["userId"].(string)
	h.Template, _ = data["template"].(string)
	if h.Template == "" {
		h.Template = "classic"
	}
	h.DownloadEnabled, _ = data["downloadEnabled"].(bool)
	if snap, ok := data["snapshotData"].(map[string]interface{}); ok {
		h.Data = snap
	}
	if colors, ok := data["colors"].(map[string]interface{}); ok {
		h.Hints.Colors.Primary, _ = colors["primary"].(string)
		h.Hints.Colors.Accent, _ = colors["accent"].(string)
	}
	h.Hints.Locale, _ = data["locale"].(string)
	h.Hints.Country, _ = data["country"].(string)
	if ts, ok := data["createdAt"].(time.Time); ok {
		h.CreatedAt = ts
	}
	return h, nil
}
