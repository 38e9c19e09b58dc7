package main

import (
	"net/http"
)

func setupRouter(a *app) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("/{$}", a.page)
	mux.HandleFunc("GET /api/dashboard", a.page.JSONHandler())
	mux.HandleFunc("GET /metrics", a.collector.Handler())
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return mux
}
