package feed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PostID is the opaque post identifier. The endpoint may send it as a JSON
// string or number; both decode to the same textual form.
type PostID string

func (id *PostID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = PostID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("post id must be a string or number: %w", err)
	}
	*id = PostID(n.String())
	return nil
}

// timestampLayouts are tried in order. Layouts without an offset are read
// as UTC; fractional seconds are accepted by all of them.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Timestamp is an ISO-8601 instant as sent by the endpoint, with or
// without a UTC offset.
type Timestamp struct {
	time.Time
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		ts.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			ts.Time = t
			return nil
		}
	}

	return fmt.Errorf("unrecognised timestamp %q", s)
}

// User is the author of a post.
type User struct {
	Name            string `json:"name"`
	Username        string `json:"username"`
	ProfileImageURL string `json:"profile_image_url"`
	FollowersCount  int64  `json:"followers_count"`
	Verified        bool   `json:"verified"`
	Description     string `json:"description,omitempty"`
}

// Post is one item of the feed.
type Post struct {
	ID             PostID    `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Text           string    `json:"text"`
	URL            string    `json:"url"`
	User           User      `json:"user"`
	Symbol         string    `json:"symbol,omitempty"`
	AdditionalText string    `json:"additional_text,omitempty"`
}

var (
	errMissingUser      = errors.New("post has no user")
	errMissingCreatedAt = errors.New("post has no created_at")
)

// UnmarshalJSON decodes a post and rejects entries the table cannot render:
// null, no user object or no creation time.
func (p *Post) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return errors.New("post is null")
	}

	type plain Post
	aux := struct {
		*plain
		CreatedAt *Timestamp `json:"created_at"`
		User      *User      `json:"user"`
	}{plain: (*plain)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if aux.User == nil {
		return errMissingUser
	}
	if aux.CreatedAt == nil || aux.CreatedAt.IsZero() {
		return errMissingCreatedAt
	}

	p.User = *aux.User
	p.CreatedAt = aux.CreatedAt.Time
	return nil
}
