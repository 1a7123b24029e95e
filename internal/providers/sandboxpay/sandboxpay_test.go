package sandboxpay

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/starwheel/internal/common/uuid/mocks"
	"github.com/KirkDiggler/starwheel/internal/providers"
)

func TestCreateCharge(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockUUID := mocks.NewMockUUID(ctrl)
	mockUUID.EXPECT().NewUUID().Return("abc")

	p, err := New(&Config{BaseURL: "http://localhost:8080/", UUIDGenerator: mockUUID})
	require.NoError(t, err)

	handle, err := p.CreateCharge(context.Background(), &providers.ChargeRequest{PlayerID: "p1", Amount: 50})
	require.NoError(t, err)
	assert.Equal(t, "ch_abc", handle.ChargeID)
	assert.Equal(t, "http://localhost:8080/pay/ch_abc", handle.PaymentURL)
}

func TestCreateChargeRejects(t *testing.T) {
	ctrl := gomock.NewController(t)
	p, err := New(&Config{UUIDGenerator: mocks.NewMockUUID(ctrl)})
	require.NoError(t, err)

	_, err = p.CreateCharge(context.Background(), &providers.ChargeRequest{PlayerID: "p1"})
	assert.ErrorIs(t, err, providers.ErrInvalidCharge)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.CreateCharge(ctx, &providers.ChargeRequest{PlayerID: "p1", Amount: 5})
	assert.ErrorIs(t, err, providers.ErrUpstreamUnavailable)
}
