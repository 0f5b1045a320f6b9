package activity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/rolodex/internal/cache"
	"github.com/thenoetrevino/rolodex/internal/models"
	"github.com/thenoetrevino/rolodex/internal/testutil"
)

func TestActivityLog(t *testing.T) {
	db, repo := testutil.SetupTestRepo(t)
	views := cache.NewMemory(0)
	svc := NewService(repo, views)
	ctx := context.Background()
	me := testutil.Session("u1")
	contactID := testutil.CreateTestContact(t, db, "u1", models.Contact{Name: "Ada"})

	views.Set(ctx, "u1", cache.ContactView(contactID), []byte("stale"))

	first, err := svc.CreateActivity(ctx, me, CreateActivityRequest{ContactID: contactID, Body: "Intro call booked"})
	require.NoError(t, err)
	assert.Equal(t, models.ActivityNote, first.Type, "Expected type to default to note")

	_, ok := views.Get(ctx, "u1", cache.ContactView(contactID))
	assert.False(t, ok, "Expected the contact view to be invalidated")

	second, err := svc.CreateActivity(ctx, me, CreateActivityRequest{ContactID: contactID, Type: models.ActivityCall, Body: "Called"})
	require.NoError(t, err)

	log, err := svc.ListByContact(ctx, me, contactID)
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.Equal(t, second.ID, log[0].ID)

	require.NoError(t, svc.DeleteActivity(ctx, me, first.ID, contactID))
	log, err = svc.ListByContact(ctx, me, contactID)
	require.NoError(t, err)
	assert.Len(t, log, 1)

	assert.ErrorIs(t, svc.DeleteActivity(ctx, me, first.ID, contactID), models.ErrNotFound)
}

func TestCreateActivity_Validation(t *testing.T) {
	db, repo := testutil.SetupTestRepo(t)
	svc := NewService(repo, cache.NewMemory(0))
	ctx := context.Background()
	me := testutil.Session("u1")
	contactID := testutil.CreateTestContact(t, db, "u1", models.Contact{Name: "Ada"})

	tests := []struct {
		name string
		req  CreateActivityRequest
		want error
	}{
		{"no contact", CreateActivityRequest{Body: "x"}, ErrInvalidContactID},
		{"empty body", CreateActivityRequest{ContactID: contactID, Body: "  "}, ErrEmptyBody},
		{"bad type", CreateActivityRequest{ContactID: contactID, Type: "sms", Body: "x"}, ErrInvalidType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateActivity(ctx, me, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := svc.CreateActivity(ctx, testutil.Session("u2"), CreateActivityRequest{ContactID: contactID, Body: "x"})
	assert.ErrorIs(t, err, models.ErrNotFound, "Expected other users' contacts to be invisible")

	_, err = svc.CreateActivity(ctx, nil, CreateActivityRequest{ContactID: contactID, Body: "x"})
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
}
