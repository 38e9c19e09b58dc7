package render

import (
	"bytes"
	"html/template"
	"slices"
	"time"

	"github.com/angeloszaimis/feed-dashboard/internal/feed"
)

// Row is the display model of one post.
type Row struct {
	ID              string
	TimeLabel       string
	New             bool
	ProfileImageURL string
	Name            string
	Username        string
	Text            string
	URL             string
	Followers       string
	VerifiedClass   string
}

// NewRow computes the display fields of post as seen at now.
func NewRow(now time.Time, post feed.Post) Row {
	return Row{
		ID:              string(post.ID),
		TimeLabel:       RelativeLabel(now, post.CreatedAt),
		New:             IsNew(now, post.CreatedAt),
		ProfileImageURL: post.User.ProfileImageURL,
		Name:            post.User.Name,
		Username:        post.User.Username,
		Text:            post.Text,
		URL:             post.URL,
		Followers:       AbbreviateFollowers(post.User.FollowersCount),
		VerifiedClass:   VerifiedClass(post.User.Verified),
	}
}

// SortNewestFirst returns a copy of posts ordered by CreatedAt descending.
// Posts with equal timestamps keep their relative order.
func SortNewestFirst(posts []feed.Post) []feed.Post {
	sorted := slices.Clone(posts)
	slices.SortStableFunc(sorted, func(a, b feed.Post) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return sorted
}

// Builder accumulates rows for one table body.
type Builder struct {
	now  time.Time
	rows []Row
}

// NewBuilder starts a table body rendered as of now.
func NewBuilder(now time.Time) *Builder {
	return &Builder{now: now}
}

// Add appends the row for post.
func (b *Builder) Add(post feed.Post) *Builder {
	b.rows = append(b.rows, NewRow(b.now, post))
	return b
}

// AddAll appends rows for posts in the given order.
func (b *Builder) AddAll(posts []feed.Post) *Builder {
	for _, post := range posts {
		b.Add(post)
	}
	return b
}

// Rows returns the accumulated row models.
func (b *Builder) Rows() []Row {
	return b.rows
}

// HTML renders the accumulated rows as <tr> elements, escaping every field.
func (b *Builder) HTML() (template.HTML, error) {
	var buf bytes.Buffer
	if err := rowsTemplate.Execute(&buf, b.rows); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

var rowsTemplate = template.Must(template.New("rows").Parse(`{{range .}}
<tr class="border-t hover:bg-gray-600" data-id="{{.ID}}">
    <td class="p-3">
        {{.TimeLabel}}{{if .New}}<span class="ml-2 text-xs text-blue-300 font-semibold">NEW</span>{{end}}
    </td>
    <td class="p-3">
        <div class="flex items-center space-x-2">
            <img src="{{.ProfileImageURL}}" alt="Profile" class="w-6 h-6 rounded-full">
            <div>
                <p class="text-sm font-semibold text-gray-100">{{.Name}}</p>
                <p class="text-xs text-gray-400">@{{.Username}}</p>
            </div>
        </div>
    </td>
    <td class="p-3">
        <a href="{{.URL}}" target="_blank" rel="noopener" class="text-sm text-blue-300 hover:text-blue-200">{{.Text}}</a>
    </td>
    <td class="p-3">{{.Followers}}</td>
    <td class="p-3 flex justify-center">
        <span class="w-2 h-2 rounded-full {{.VerifiedClass}} inline-block"></span>
    </td>
</tr>{{end}}`))
