// Package dto contains data transfer objects for the bot domain
package dto

// CommandRequest carries the identity and payload of one inbound update
type CommandRequest struct {
	UserID    int64  `json:"userId"`
	ChatID    int64  `json:"chatId"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	Text      string `json:"text"`
}

// CallbackRequest carries an inline-button press
type CallbackRequest struct {
	UserID  int64  `json:"userId"`
	ChatID  int64  `json:"chatId"`
	Action  string `json:"action"`
	MovieID string `json:"movieId"`
}

// FavoriteButton describes the favorite-toggle inline button to attach
type FavoriteButton struct {
	MovieID    string `json:"movieId"`
	IsFavorite bool   `json:"isFavorite"`
}

// Reply is what a command produces: one or more outbound messages,
// optionally with keyboards. Delivery paginates each message; the
// control keyboard goes on the first message, the inline one on the last.
type Reply struct {
	Messages        []string        `json:"messages"`
	MainMenu        bool            `json:"mainMenu"`
	ControlKeyboard bool            `json:"controlKeyboard"`
	Favorite        *FavoriteButton `json:"favorite,omitempty"`
}

// CallbackReply is what an inline-button press produces: a short callback
// answer and, when the favorite status changed, the recomputed button.
type CallbackReply struct {
	Answer   string          `json:"answer"`
	Favorite *FavoriteButton `json:"favorite,omitempty"`
}

// TextReply builds a single-message reply
func TextReply(text string) *Reply {
	return &Reply{Messages: []string{text}}
}
