package handler

import (
	"context"
	"testing"

	"github.com/Astemirdum/rental-service/availability/internal/domain"
	"github.com/Astemirdum/rental-service/availability/internal/errs"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConsumer_handle(t *testing.T) {
	t.Parallel()
	const id = "4c8a7f2e-1d3b-4a9e-8f60-2b7c5d1e9a01"
	errDB := errors.New("db down")

	tests := []struct {
		name      string
		value     string
		updateErr error
		wantCall  bool
		wantDrop  bool
		wantErr   error
	}{
		{name: "ok", value: `{"equipmentId":"` + id + `","status":"MAINTENANCE"}`, wantCall: true},
		{name: "broken json", value: `{"equipmentId":`, wantDrop: true},
		{name: "no equipment", value: `{"status":"RENTED"}`, wantDrop: true},
		{name: "unknown equipment", value: `{"equipmentId":"` + id + `","status":"RENTED"}`,
			updateErr: errs.ErrNotFound, wantCall: true, wantDrop: true},
		{name: "unknown status", value: `{"equipmentId":"` + id + `","status":"LOST"}`,
			updateErr: errors.Wrap(domain.ErrUnknownStatus, "LOST"), wantCall: true, wantDrop: true},
		{name: "transient failure is retried", value: `{"equipmentId":"` + id + `","status":"RENTED"}`,
			updateErr: errDB, wantCall: true, wantErr: errDB},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			called := false
			c := NewConsumer(func(_ context.Context, equipmentID, _ string) error {
				called = true
				require.Equal(t, id, equipmentID)
				return tt.updateErr
			}, zap.NewNop())

			err := c.handle(context.Background(), []byte(tt.value))
			require.Equal(t, tt.wantCall, called)
			switch {
			case tt.wantDrop:
				require.ErrorIs(t, err, errDrop)
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
				require.NotErrorIs(t, err, errDrop)
			default:
				require.NoError(t, err)
			}
		})
	}
}
