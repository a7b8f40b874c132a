package models

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestUserSerialize_OmitsPassword(t *testing.T) {
	u := &User{
		Username:  "alice",
		Password:  "$2a$10$hash",
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Liddell",
		Location:  "Chicago IL",
	}

	data, err := json.Marshal(u.Serialize())
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	require.NotContains(t, out, "password")
	require.Equal(t, "alice", out["username"])
	require.Equal(t, false, out["is_admin"])
	require.Equal(t, "", out["bio"])
}

func TestListingSerialize(t *testing.T) {
	tests := []struct {
		name      string
		price     decimal.Decimal
		rented    sql.NullString
		wantPrice string
		wantRent  *string
	}{
		{name: "whole price", price: decimal.NewFromInt(100), wantPrice: "100.00"},
		{name: "fractional price", price: decimal.RequireFromString("99.5"), wantPrice: "99.50"},
		{name: "zero price", price: decimal.Zero, wantPrice: "0.00"},
		{
			name:      "rented",
			price:     decimal.NewFromInt(1),
			rented:    sql.NullString{String: "bob", Valid: true},
			wantPrice: "1.00",
			wantRent:  ptr("bob"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Listing{ID: 3, Name: "Loft", Price: tt.price, Created: "alice", Rented: tt.rented}
			got := l.Serialize()
			require.Equal(t, tt.wantPrice, got.Price)
			require.Equal(t, tt.wantRent, got.Rented)
			require.Equal(t, int64(3), got.ID)
			require.Equal(t, "alice", got.Created)
		})
	}
}

func TestMessageSerialize(t *testing.T) {
	sent := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m := &Message{ID: 9, Text: "Is it free?", TimeSent: sent, ToUser: "bob", FromUser: "alice", ListingID: 5}

	got := m.Serialize()
	require.Equal(t, MessageResponse{ID: 9, Text: "Is it free?", TimeSent: sent, ToUser: "bob", FromUser: "alice", ListingID: 5}, got)
}

func ptr(s string) *string { return &s }
