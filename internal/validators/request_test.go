// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-item-custody/models"
)

func TestRequestValidator_Validate(t *testing.T) {
	v := NewRequestValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		obj     any
		wantErr error
		wantMsg string
	}{
		{
			name: "valid register request",
			obj:  models.RegisterRequest{Login: "alice", Password: "secret"},
		},
		{
			name: "pointer is accepted",
			obj:  &models.LoginRequest{Login: "alice", Password: "secret"},
		},
		{
			name:    "missing password",
			obj:     models.RegisterRequest{Login: "alice"},
			wantErr: ErrValidationFailed,
			wantMsg: "field 'password' failed 'required'",
		},
		{
			name:    "missing item name",
			obj:     models.CreateItemRequest{Token: "t"},
			wantErr: ErrValidationFailed,
			wantMsg: "field 'name' failed 'required'",
		},
		{
			name:    "non-positive item id",
			obj:     models.SendItemRequest{ID: -1, Recipient: "bob"},
			wantErr: ErrValidationFailed,
			wantMsg: "field 'id' failed",
		},
		{
			name:    "several violations are joined",
			obj:     models.SendItemRequest{},
			wantErr: ErrValidationFailed,
			wantMsg: "; ",
		},
		{
			name:    "not a struct",
			obj:     42,
			wantErr: ErrUnsupportedType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.obj)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestRequestValidator_Validate_Partial(t *testing.T) {
	v := NewRequestValidator()

	err := v.Validate(context.Background(), models.SendItemRequest{Recipient: "bob"}, "Recipient")
	assert.NoError(t, err, "only Recipient is checked")

	err = v.Validate(context.Background(), models.SendItemRequest{ID: 1}, "Recipient")
	assert.ErrorIs(t, err, ErrValidationFailed)
}
