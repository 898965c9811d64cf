package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool, metricsHandler http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

// registerMemberRoutes serves anything an approved group member may call.
func registerMemberRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/groups/{groupID}/check-in", RequireAuth(verifier, http.HandlerFunc(handler.CheckIn)))
	mux.Handle("GET /v1/games/{gameID}/state", RequireAuth(verifier, http.HandlerFunc(handler.GetGameState)))
	mux.Handle("GET /v1/games/{gameID}/rotation/candidates", RequireAuth(verifier, http.HandlerFunc(handler.ListRotationCandidates)))
	mux.Handle("GET /v1/games/{gameID}/live", RequireAuth(verifier, http.HandlerFunc(handler.LiveGame)))
}

func registerRosterRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/games/{gameID}/manual-participants", RequireAuth(verifier, http.HandlerFunc(handler.AddManualParticipant)))
	mux.Handle("PUT /v1/games/{gameID}/players/{playerID}/team", RequireAuth(verifier, http.HandlerFunc(handler.AssignPlayerTeam)))
	mux.Handle("PUT /v1/games/{gameID}/manual-participants/{participantID}/team", RequireAuth(verifier, http.HandlerFunc(handler.AssignManualParticipantTeam)))
	mux.Handle("POST /v1/games/{gameID}/captains", RequireAuth(verifier, http.HandlerFunc(handler.AssignCaptain)))
	mux.Handle("POST /v1/games/{gameID}/teams/select-players", RequireAuth(verifier, http.HandlerFunc(handler.SelectPlayers)))
	mux.Handle("PUT /v1/games/{gameID}/players/{playerID}/stats", RequireAuth(verifier, http.HandlerFunc(handler.UpdatePlayerStats)))
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/games/{gameID}/referee", RequireAuth(verifier, http.HandlerFunc(handler.AssignReferee)))
	mux.Handle("POST /v1/games/{gameID}/timer/start", RequireAuth(verifier, http.HandlerFunc(handler.StartTimer)))
	mux.Handle("POST /v1/games/{gameID}/timer/pause", RequireAuth(verifier, http.HandlerFunc(handler.PauseTimer)))
	mux.Handle("POST /v1/games/{gameID}/matches", RequireAuth(verifier, http.HandlerFunc(handler.CreateMatch)))
	mux.Handle("POST /v1/games/{gameID}/matches/start-scheduled", RequireAuth(verifier, http.HandlerFunc(handler.StartScheduledMatch)))
	mux.Handle("POST /v1/games/{gameID}/matches/score", RequireAuth(verifier, http.HandlerFunc(handler.UpdateScore)))
	mux.Handle("POST /v1/games/{gameID}/matches/end", RequireAuth(verifier, http.HandlerFunc(handler.EndMatch)))
	mux.Handle("POST /v1/games/{gameID}/matches/cancel", RequireAuth(verifier, http.HandlerFunc(handler.CancelMatch)))
	mux.Handle("POST /v1/games/{gameID}/coin-toss", RequireAuth(verifier, http.HandlerFunc(handler.ResolveCoinToss)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/expire-timers", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunExpirySweepJob)))
}
