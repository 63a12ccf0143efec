package links

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/timevault/internal/common"
	"github.com/dmitrijs2005/timevault/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestIssue_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item := f.createItem(t, "owner-1", "secret")
	expiry := time.Now().Add(time.Hour)

	issued, err := f.svc.Issue(ctx, IssueParams{
		VaultItemID: item.ID,
		OwnerID:     "owner-1",
		ExpiresAt:   expiry,
		MaxViews:    3,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, issued.LinkID)
	assert.Len(t, issued.RawToken, 64)
	assert.Equal(t, "http://localhost:8080/api/access/"+issued.RawToken, issued.URL)

	// only the digest is persisted
	link, err := f.links.FindByID(ctx, issued.LinkID)
	require.NoError(t, err)
	assert.NotEqual(t, issued.RawToken, link.TokenHash)
	assert.Equal(t, 0, link.CurrentViews)
	assert.False(t, link.Revoked)
	assert.Empty(t, link.PasswordHash)
}

func TestIssue_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item := f.createItem(t, "owner-1", "secret")

	cases := map[string]IssueParams{
		"missing expiry": {VaultItemID: item.ID, OwnerID: "owner-1", MaxViews: 1},
		"past expiry":    {VaultItemID: item.ID, OwnerID: "owner-1", ExpiresAt: time.Now().Add(-time.Minute), MaxViews: 1},
		"zero views":     {VaultItemID: item.ID, OwnerID: "owner-1", ExpiresAt: time.Now().Add(time.Hour), MaxViews: 0},
		"negative views": {VaultItemID: item.ID, OwnerID: "owner-1", ExpiresAt: time.Now().Add(time.Hour), MaxViews: -2},
	}

	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Issue(ctx, p)
			assert.ErrorIs(t, err, common.ErrorValidation)
		})
	}
}

func TestIssue_OwnershipAndMissingItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item := f.createItem(t, "owner-1", "secret")

	_, err := f.svc.Issue(ctx, IssueParams{
		VaultItemID: item.ID, OwnerID: "intruder",
		ExpiresAt: time.Now().Add(time.Hour), MaxViews: 1,
	})
	assert.ErrorIs(t, err, common.ErrorForbidden)

	_, err = f.svc.Issue(ctx, IssueParams{
		VaultItemID: "no-such-item", OwnerID: "owner-1",
		ExpiresAt: time.Now().Add(time.Hour), MaxViews: 1,
	})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestIssue_PasswordHashedPerLink(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item := f.createItem(t, "owner-1", "secret")

	a := f.issue(t, item, time.Now().Add(time.Hour), 1, "same-password")
	b := f.issue(t, item, time.Now().Add(time.Hour), 1, "same-password")

	la, err := f.links.FindByID(ctx, a.LinkID)
	require.NoError(t, err)
	lb, err := f.links.FindByID(ctx, b.LinkID)
	require.NoError(t, err)

	assert.NotEqual(t, "same-password", la.PasswordHash)
	// bcrypt salts per hash, so two links never share a digest
	assert.NotEqual(t, la.PasswordHash, lb.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(la.PasswordHash), []byte("same-password")))
}

func TestIssue_UniqueTokenHashes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item := f.createItem(t, "owner-1", "secret")

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		issued := f.issue(t, item, time.Now().Add(time.Hour), 1, "")
		link, err := f.links.FindByID(ctx, issued.LinkID)
		require.NoError(t, err)
		assert.Falsef(t, seen[link.TokenHash], "duplicate token hash on issuance %d", i)
		seen[link.TokenHash] = true
	}
}

func TestStatus_ReflectsLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item := f.createItem(t, "owner-1", "secret")
	issued := f.issue(t, item, time.Now().Add(time.Hour), 1, "")

	status, err := f.svc.Status(ctx, issued.LinkID, "owner-1")
	require.NoError(t, err)
	assert.False(t, status.Expired)
	assert.False(t, status.Exhausted)
	assert.False(t, status.Revoked)

	res, err := f.svc.Redeem(ctx, issued.RawToken, "", RequestMeta{})
	require.NoError(t, err)
	require.Equal(t, models.OutcomeAllowed, res.Outcome)

	status, err = f.svc.Status(ctx, issued.LinkID, "owner-1")
	require.NoError(t, err)
	assert.True(t, status.Exhausted)
	assert.Equal(t, 1, status.CurrentViews)

	_, err = f.svc.Status(ctx, issued.LinkID, "intruder")
	assert.ErrorIs(t, err, common.ErrorForbidden)
}

func TestRevoke_OwnershipEnforced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item := f.createItem(t, "owner-1", "secret")
	issued := f.issue(t, item, time.Now().Add(time.Hour), 1, "")

	err := f.svc.Revoke(ctx, issued.LinkID, "intruder")
	assert.ErrorIs(t, err, common.ErrorForbidden)

	err = f.svc.Revoke(ctx, "no-such-link", "owner-1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
