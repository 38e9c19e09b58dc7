// Feedstub is a local stand-in for the posts API used when running the
// dashboard without the real backend. It serves HEAD and GET /api/tweets and
// adds a generated post on every tick, keeping the newest 100.
//
// Usage:
//
//	go run ./scripts/feedstub -port 5000 -every 3s
//	go run ./scripts/feedstub -port 5000 -fail-every 4   # every 4th request answers 503
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const maxPosts = 100

type user struct {
	Username        string `json:"username"`
	Name            string `json:"name"`
	ProfileImageURL string `json:"profile_image_url"`
	FollowersCount  int64  `json:"followers_count"`
	Description     string `json:"description"`
	Verified        bool   `json:"verified"`
}

type post struct {
	ID             string `json:"id"`
	Text           string `json:"text"`
	CreatedAt      string `json:"created_at"`
	URL            string `json:"url"`
	User           user   `json:"user"`
	Symbol         string `json:"symbol"`
	AdditionalText string `json:"additional_text"`
}

type store struct {
	mutex sync.Mutex
	posts []post
}

func (s *store) add(p post) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.posts = append(s.posts, p)
	if len(s.posts) > maxPosts {
		s.posts = s.posts[len(s.posts)-maxPosts:]
	}
}

func (s *store) list() []post {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	out := make([]post, len(s.posts))
	copy(out, s.posts)
	return out
}

var handles = []string{"alice", "bob", "carol", "dave", "erin"}

var symbols = []string{"MOON", "PEPE", "CAT", "DOGE", "ZAP"}

func generate(now time.Time) post {
	handle := handles[rand.IntN(len(handles))]
	symbol := symbols[rand.IntN(len(symbols))]
	id := uuid.NewString()

	return post{
		ID:        id,
		Text:      fmt.Sprintf("@launchcoin $%s +%s coin", symbol, handle),
		CreatedAt: now.UTC().Format(time.RFC3339),
		URL:       fmt.Sprintf("https://twitter.com/%s/status/%s", handle, id),
		User: user{
			Username:        handle,
			Name:            handle + " (stub)",
			ProfileImageURL: "https://placehold.co/48x48?text=" + handle[:1],
			FollowersCount:  rand.Int64N(3_000_000),
			Description:     "No bio available",
			Verified:        rand.IntN(2) == 0,
		},
		Symbol:         symbol,
		AdditionalText: handle + " coin",
	}
}

func main() {
	port := flag.Int("port", 5000, "port to listen on")
	every := flag.Duration("every", 5*time.Second, "interval between generated posts")
	failEvery := flag.Int("fail-every", 0, "answer every Nth request with 503 (0 disables)")
	flag.Parse()

	s := &store{}
	s.add(generate(time.Now()))

	go func() {
		ticker := time.NewTicker(*every)
		defer ticker.Stop()
		for now := range ticker.C {
			s.add(generate(now))
		}
	}()

	var requests atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tweets", func(w http.ResponseWriter, r *http.Request) {
		n := requests.Add(1)
		log.Printf("request: method=%s path=%s from=%s", r.Method, r.URL.Path, r.RemoteAddr)

		if *failEvery > 0 && n%int64(*failEvery) == 0 {
			http.Error(w, "stub failure", http.StatusServiceUnavailable)
			return
		}

		switch r.Method {
		case http.MethodHead:
			w.WriteHeader(http.StatusOK)
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(s.list()); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("starting feed stub on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
