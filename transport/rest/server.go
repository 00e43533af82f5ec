package rest

import (
	"net/http"
	"time"
)

// NewRouter - registers the REST routes, the live updates route and the metrics endpoint.
func NewRouter(handlers Handlers, live, metrics http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", handlers.PingHandler)

	mux.HandleFunc("GET /games", handlers.ListGames)
	mux.HandleFunc("POST /games", handlers.CreateGame)
	mux.HandleFunc("GET /games/{name}", handlers.GetGame)
	mux.HandleFunc("PUT /games/{name}", handlers.JoinGame)
	mux.HandleFunc("POST /games/{name}", handlers.JoinGame)
	mux.HandleFunc("GET /games/{name}/play", handlers.GetPlayState)
	mux.HandleFunc("POST /games/{name}/play", handlers.SubmitMove)

	mux.HandleFunc("POST /users", handlers.RegisterPlayer)
	mux.HandleFunc("GET /users/{username}", handlers.GetPlayer)
	mux.HandleFunc("GET /users/{username}/history", handlers.PlayerHistory)

	if live != nil {
		mux.Handle("GET /games/{name}/ws", live)
	}

	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}

	return mux
}

func NewServer(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}
}
