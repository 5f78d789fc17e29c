package domain

import "time"

// FeedbackItem is an immutable note or video left by the coach or the client.
type FeedbackItem struct {
	ID       string    `json:"id"`
	Author   Role      `json:"author"`
	Text     string    `json:"text"`
	VideoURL string    `json:"videoUrl,omitempty"`
	TS       time.Time `json:"ts"`
}
