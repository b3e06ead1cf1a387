package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"wastetrade-service/internal/domain"
	"wastetrade-service/pkg/xerrors"
)

func TestRegisterAgent(t *testing.T) {
	repo := newFakeAgentRepo()
	uc := NewAgentUsecase(repo, testRefs(), zap.NewNop())

	agent, err := uc.RegisterAgent(context.Background(), RegisterAgentRequest{
		Username: "collector_joe",
		Email:    "joe@example.com",
		Password: "s3curepass",
	})
	require.NoError(t, err)

	assert.NotZero(t, agent.AgentID)
	assert.Contains(t, agent.Reference, "AGT-")
	// Credentials are stored hashed, never in the clear.
	assert.NotEqual(t, "s3curepass", agent.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(agent.Password), []byte("s3curepass")))
}

func TestRegisterAgentDuplicateEmail(t *testing.T) {
	repo := newFakeAgentRepo()
	uc := NewAgentUsecase(repo, testRefs(), zap.NewNop())

	req := RegisterAgentRequest{
		Username: "collector_joe",
		Email:    "joe@example.com",
		Password: "s3curepass",
	}
	_, err := uc.RegisterAgent(context.Background(), req)
	require.NoError(t, err)

	_, err = uc.RegisterAgent(context.Background(), req)
	assert.ErrorIs(t, err, xerrors.ErrAgentAlreadyExists)
}

func TestRegisterAgentValidation(t *testing.T) {
	repo := newFakeAgentRepo()
	uc := NewAgentUsecase(repo, testRefs(), zap.NewNop())

	for _, email := range []string{"", "not-an-email", "joe@", "@example.com", "joe@example"} {
		_, err := uc.RegisterAgent(context.Background(), RegisterAgentRequest{
			Username: "joe", Email: email, Password: "s3curepass",
		})
		assert.ErrorIs(t, err, xerrors.ErrInvalidEmailFormat, "email %q", email)
	}

	for _, password := range []string{"", "short1", "lettersonly", "12345678"} {
		_, err := uc.RegisterAgent(context.Background(), RegisterAgentRequest{
			Username: "joe", Email: "joe@example.com", Password: password,
		})
		assert.ErrorIs(t, err, xerrors.ErrWeakPassword, "password %q", password)
	}
}

func TestUpdateAgentProfile(t *testing.T) {
	repo := newFakeAgentRepo()
	uc := NewAgentUsecase(repo, testRefs(), zap.NewNop())

	agent, err := uc.RegisterAgent(context.Background(), RegisterAgentRequest{
		Username: "collector_joe",
		Email:    "joe@example.com",
		Password: "s3curepass",
	})
	require.NoError(t, err)

	addr := &domain.Address{Street: "12 Recycle Rd", City: "Nairobi", State: "Nairobi"}
	require.NoError(t, uc.UpdateAgentProfile(context.Background(), "joe@example.com", addr))

	stored, err := uc.GetAgentByID(context.Background(), agent.AgentID)
	require.NoError(t, err)
	require.NotNil(t, stored.Address)
	assert.Equal(t, "Nairobi", stored.Address.City)

	assert.ErrorIs(t,
		uc.UpdateAgentProfile(context.Background(), "joe@example.com", nil),
		xerrors.ErrInvalidRequest)
	assert.ErrorIs(t,
		uc.UpdateAgentProfile(context.Background(), "nobody@example.com", addr),
		xerrors.ErrAgentNotFound)
}

func TestRegisterUser(t *testing.T) {
	store := newFakeLedgerStore()
	uc := NewUserUsecase(&fakeUserRepo{store: store}, zap.NewNop())

	user, err := uc.RegisterUser(context.Background(), RegisterUserRequest{
		Username: "seller_sam",
		Email:    "sam@example.com",
		Password: "s3curepass",
	})
	require.NoError(t, err)

	// New users start at exactly zero balance.
	assert.True(t, user.Balance.IsZero())
	assert.NotEqual(t, "s3curepass", user.Password)

	_, err = uc.RegisterUser(context.Background(), RegisterUserRequest{
		Username: "seller_sam2",
		Email:    "sam@example.com",
		Password: "s3curepass",
	})
	assert.ErrorIs(t, err, xerrors.ErrUserAlreadyExists)
}

func TestAdminDeleteUser(t *testing.T) {
	store := newFakeLedgerStore()
	store.addUser(1, "0")
	uc := NewAdminUsecase(&fakeUserRepo{store: store}, &fakeSender{}, zap.NewNop())

	require.NoError(t, uc.DeleteUser(context.Background(), 1))
	assert.ErrorIs(t, uc.DeleteUser(context.Background(), 1), xerrors.ErrUserNotFound)
}

func TestAdminSendNotification(t *testing.T) {
	store := newFakeLedgerStore()
	sender := &fakeSender{}
	uc := NewAdminUsecase(&fakeUserRepo{store: store}, sender, zap.NewNop())

	result, err := uc.SendNotification(context.Background(), "sam@example.com", "Pickup", "Tomorrow 9am")
	require.NoError(t, err)
	assert.Equal(t, "Notification sent successfully", result.Message)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "sam@example.com", sender.sent[0].To)

	_, err = uc.SendNotification(context.Background(), "not-an-email", "Pickup", "Tomorrow 9am")
	assert.ErrorIs(t, err, xerrors.ErrInvalidEmailFormat)

	sender.err = errors.New("smtp down")
	_, err = uc.SendNotification(context.Background(), "sam@example.com", "Pickup", "Tomorrow 9am")
	assert.Error(t, err)
}
