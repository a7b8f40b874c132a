package models

import "time"

// Message is a note from one user to another about a listing.
type Message struct {
	ID        int64     `db:"id"`
	Text      string    `db:"text"`
	TimeSent  time.Time `db:"time_sent"`
	ToUser    string    `db:"to_user"`
	FromUser  string    `db:"from_user"`
	ListingID int64     `db:"listing_id"`
}

// MessageResponse is the JSON representation of a message.
type MessageResponse struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	TimeSent  time.Time `json:"time_sent"`
	ToUser    string    `json:"to_user"`
	FromUser  string    `json:"from_user"`
	ListingID int64     `json:"listing_id"`
}

// Serialize converts the message into its JSON representation.
func (m *Message) Serialize() MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Text:      m.Text,
		TimeSent:  m.TimeSent,
		ToUser:    m.ToUser,
		FromUser:  m.FromUser,
		ListingID: m.ListingID,
	}
}

// SendMessageRequest defines the body of POST /messages. The sender is taken from the token.
type SendMessageRequest struct {
	Text      string `json:"text" binding:"required" validate:"required"`
	ToUser    string `json:"to_user" binding:"required" validate:"required"`
	ListingID int64  `json:"listing_id" binding:"required" validate:"required"`
}
