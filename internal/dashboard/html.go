package dashboard

import (
	"encoding/json"
	"html/template"
	"io"
	"net/http"
)

type pageData struct {
	Snapshot
	RefreshSeconds int
}

// WriteHTML writes the full dashboard document.
func (p *Page) WriteHTML(w io.Writer) error {
	return pageTemplate.Execute(w, pageData{
		Snapshot:       p.Snapshot(),
		RefreshSeconds: int(p.refresh.Seconds()),
	})
}

// ServeHTTP serves the dashboard document.
func (p *Page) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := p.WriteHTML(w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// JSONHandler serves the page snapshot as JSON.
func (p *Page) JSONHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		if err := json.NewEncoder(w).Encode(p.Snapshot()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    {{if .RefreshSeconds}}<meta http-equiv="refresh" content="{{.RefreshSeconds}}">{{end}}
    <title>Tweet Monitor</title>
    <script src="https://cdn.tailwindcss.com"></script>
</head>
<body class="bg-gray-900 text-gray-100">
    <div class="container mx-auto p-4">
        <div class="flex items-center space-x-2 mb-4">
            <span id="status-dot" class="w-3 h-3 rounded-full {{.StatusClass}} inline-block"></span>
            <h1 class="text-xl font-bold">Tweet Monitor</h1>
        </div>
        <p id="loading" class="text-gray-400"{{if not .LoadingVisible}} style="display: none"{{end}}>{{.LoadingText}}</p>
        <table class="w-full bg-gray-700 rounded">
            <thead>
                <tr>
                    <th class="p-3 text-left">Time</th>
                    <th class="p-3 text-left">User</th>
                    <th class="p-3 text-left">Tweet</th>
                    <th class="p-3 text-left">Followers</th>
                    <th class="p-3 text-center">Verified</th>
                </tr>
            </thead>
            <tbody id="tweets">{{.TableBody}}</tbody>
        </table>
        <p id="tweet-count" class="text-sm text-gray-400 mt-2">{{.CountLabel}}</p>
    </div>
</body>
</html>
`))
