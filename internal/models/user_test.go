package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShipmentStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    ShipmentStatus
		wantErr bool
	}{
		{"Not Shipped", ShipmentNotShipped, false},
		{"In Progress", ShipmentInProgress, false},
		{"Shipped", ShipmentShipped, false},
		{"shipped", "", true},
		{"Delivered", "", true},
		{"", "", true},
	}
	for _, tc := range tests {
		got, err := ParseShipmentStatus(tc.in)
		if tc.wantErr {
			require.Error(t, err, tc.in)
			assert.True(t, errors.Is(err, ErrInvalidShipmentStatus))
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestApplyDefaults(t *testing.T) {
	u := User{WalletAddress: "0xabc"}
	u.ApplyDefaults()
	assert.Equal(t, ShipmentNotShipped, u.ShipmentStatus)

	u = User{ShipmentStatus: ShipmentShipped}
	u.ApplyDefaults()
	assert.Equal(t, ShipmentShipped, u.ShipmentStatus)
}

func TestValidationErrorUnwrap(t *testing.T) {
	_, cause := ParseShipmentStatus("Lost")
	err := NewValidationError("shipmentStatus", "must be one of Not Shipped, In Progress, Shipped", cause)

	assert.Equal(t, "validation failed for field 'shipmentStatus': must be one of Not Shipped, In Progress, Shipped", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidShipmentStatus))
}
