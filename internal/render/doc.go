// Package render turns feed posts into table rows. Formatting is split in two
// steps: NewRow maps a post to a Row model (relative time, NEW badge,
// abbreviated follower count, verification marker), and Rows writes the
// models as escaped HTML table rows.
//
// Every function takes the current time explicitly, so the same posts
// rendered at the same instant always produce identical markup.
package render
