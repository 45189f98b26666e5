package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAccount(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	acc, err := l.CreateAccount(ctx, addr1, "alice")
	require.NoError(t, err)
	assert.Equal(t, uint(1), acc.ID)
	assert.Equal(t, addr1, acc.Address)
	assert.Equal(t, "alice", acc.Details)

	found, err := l.FindAccount(ctx, addr1)
	require.NoError(t, err)
	assert.Equal(t, acc, found)
}

func TestCreateAccount_Duplicate(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	_, err := l.CreateAccount(ctx, addr1, "alice")
	require.NoError(t, err)

	_, err = l.CreateAccount(ctx, addr1, "alice2")
	require.ErrorIs(t, err, ErrDuplicateUser)

	// the stored record is untouched by the rejected call
	found, err := l.FindAccount(ctx, addr1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), found.ID)
	assert.Equal(t, "alice", found.Details)
}

func TestCreateAccount_EmptyDetails(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		details string
	}{
		{name: "empty", details: ""},
		{name: "blank", details: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.CreateAccount(ctx, addr1, tt.details)
			require.ErrorIs(t, err, ErrEmptyData)
		})
	}

	// nothing was registered and no id was consumed
	_, err := l.FindAccount(ctx, addr1)
	require.ErrorIs(t, err, ErrUnregisteredUser)

	acc, err := l.CreateAccount(ctx, addr1, "alice")
	require.NoError(t, err)
	assert.Equal(t, uint(1), acc.ID)
}

func TestFindAccount_Unregistered(t *testing.T) {
	l := newTestLedger(t)

	_, err := l.FindAccount(context.Background(), addr1)
	require.ErrorIs(t, err, ErrUnregisteredUser)
}

func TestUpdateAccountDetails(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	created, err := l.CreateAccount(ctx, addr1, "alice")
	require.NoError(t, err)

	updated, err := l.UpdateAccountDetails(ctx, addr1, "alice v2")
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.Address, updated.Address)
	assert.Equal(t, "alice v2", updated.Details)

	found, err := l.FindAccount(ctx, addr1)
	require.NoError(t, err)
	assert.Equal(t, "alice v2", found.Details)
}

func TestUpdateAccountDetails_Errors(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	_, err := l.UpdateAccountDetails(ctx, addr1, "details")
	require.ErrorIs(t, err, ErrUnregisteredUser)

	registerAccount(t, l, addr1)
	_, err = l.UpdateAccountDetails(ctx, addr1, "")
	require.ErrorIs(t, err, ErrEmptyData)
}

func TestDeleteAccount_Unregistered(t *testing.T) {
	l := newTestLedger(t)

	err := l.DeleteAccount(context.Background(), addr1)
	require.ErrorIs(t, err, ErrUnregisteredUser)
}
