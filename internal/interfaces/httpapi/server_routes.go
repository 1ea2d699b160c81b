package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerAuthRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.HandleFunc("POST /v1/auth/sign-up", handler.SignUp)
	mux.HandleFunc("POST /v1/auth/sign-in", handler.SignIn)
	mux.Handle("POST /v1/auth/sign-out", RequireAuth(verifier, http.HandlerFunc(handler.SignOut)))
}

// Public reads mirror what any signed-out visitor of the team page can see.
func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/files/{bucket}/{path...}", handler.ServeFile)
	mux.HandleFunc("GET /v1/formations", handler.ListFormations)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedProfileRoutes(mux, handler, verifier)
	registerAuthorizedEventRoutes(mux, handler, verifier)
	registerAuthorizedSquadRoutes(mux, handler, verifier)
	registerAuthorizedLineupRoutes(mux, handler, verifier)
	registerAuthorizedChatRoutes(mux, handler, verifier)
	registerAuthorizedMediaRoutes(mux, handler, verifier)
	registerAuthorizedNotificationRoutes(mux, handler, verifier)

	mux.Handle("GET /v1/home", RequireAuth(verifier, http.HandlerFunc(handler.GetHome)))
	mux.Handle("GET /v1/realtime", RequireAuthOrQueryToken(verifier, http.HandlerFunc(handler.Realtime)))
}

func registerAuthorizedProfileRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/profiles/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMyProfile)))
	mux.Handle("PUT /v1/profiles/me", RequireAuth(verifier, http.HandlerFunc(handler.UpdateMyProfile)))
	mux.Handle("POST /v1/profiles/me/avatar", RequireAuth(verifier, http.HandlerFunc(handler.UploadMyAvatar)))
	mux.Handle("GET /v1/profiles/me/children", RequireAuth(verifier, http.HandlerFunc(handler.ListMyChildren)))
	mux.Handle("PUT /v1/profiles/me/children/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.LinkChild)))
	mux.Handle("DELETE /v1/profiles/me/children/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.UnlinkChild)))
	mux.Handle("GET /v1/profiles/{profileID}", RequireAuth(verifier, http.HandlerFunc(handler.GetProfile)))
}

func registerAuthorizedEventRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/events", RequireAuth(verifier, http.HandlerFunc(handler.ListEvents)))
	mux.Handle("POST /v1/events", RequireAuth(verifier, http.HandlerFunc(handler.CreateEvent)))
	mux.Handle("GET /v1/events/next", RequireAuth(verifier, http.HandlerFunc(handler.GetNextEvent)))
	mux.Handle("GET /v1/events/last-result", RequireAuth(verifier, http.HandlerFunc(handler.GetLastResult)))
	mux.Handle("GET /v1/events/{eventID}", RequireAuth(verifier, http.HandlerFunc(handler.GetEvent)))
	mux.Handle("PUT /v1/events/{eventID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateEvent)))
	mux.Handle("DELETE /v1/events/{eventID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteEvent)))
	mux.Handle("PUT /v1/events/{eventID}/score", RequireAuth(verifier, http.HandlerFunc(handler.RecordEventScore)))
	mux.Handle("GET /v1/events/{eventID}/availability", RequireAuth(verifier, http.HandlerFunc(handler.ListEventAvailability)))
	mux.Handle("PUT /v1/events/{eventID}/availability", RequireAuth(verifier, http.HandlerFunc(handler.RespondAvailability)))
	mux.Handle("GET /v1/events/{eventID}/available-players", RequireAuth(verifier, http.HandlerFunc(handler.ListAvailablePlayers)))
}

func registerAuthorizedSquadRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/players", RequireAuth(verifier, http.HandlerFunc(handler.ListPlayers)))
	mux.Handle("POST /v1/players", RequireAuth(verifier, http.HandlerFunc(handler.CreatePlayer)))
	mux.Handle("GET /v1/players/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.GetPlayer)))
	mux.Handle("PUT /v1/players/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdatePlayer)))
	mux.Handle("DELETE /v1/players/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.DeletePlayer)))
	mux.Handle("GET /v1/players/{playerID}/stats", RequireAuth(verifier, http.HandlerFunc(handler.GetPlayerStats)))
	mux.Handle("PUT /v1/players/{playerID}/stats", RequireAuth(verifier, http.HandlerFunc(handler.UpsertPlayerStats)))
	mux.Handle("GET /v1/stats", RequireAuth(verifier, http.HandlerFunc(handler.GetLeaderboard)))
	mux.Handle("DELETE /v1/stats", RequireAuth(verifier, http.HandlerFunc(handler.ResetPlayerStats)))
}

func registerAuthorizedLineupRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/lineups/builder", RequireAuth(verifier, http.HandlerFunc(handler.GetMatchBuilder)))
	mux.Handle("POST /v1/lineups/preview", RequireAuth(verifier, http.HandlerFunc(handler.PreviewLineup)))
	mux.Handle("GET /v1/events/{eventID}/lineup", RequireAuth(verifier, http.HandlerFunc(handler.GetMatchLineup)))
	mux.Handle("PUT /v1/events/{eventID}/lineup", RequireAuth(verifier, http.HandlerFunc(handler.SaveMatchLineup)))
	mux.Handle("GET /v1/events/{eventID}/starting-picks", RequireAuth(verifier, http.HandlerFunc(handler.ListStartingPicks)))
	mux.Handle("PUT /v1/events/{eventID}/starting-picks", RequireAuth(verifier, http.HandlerFunc(handler.SaveStartingPicks)))
}

func registerAuthorizedChatRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/chat/messages", RequireAuth(verifier, http.HandlerFunc(handler.ListMessages)))
	mux.Handle("POST /v1/chat/messages", RequireAuth(verifier, http.HandlerFunc(handler.SendMessage)))
	mux.Handle("DELETE /v1/chat/messages/{messageID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteMessage)))
	mux.Handle("GET /v1/announcements", RequireAuth(verifier, http.HandlerFunc(handler.ListAnnouncements)))
	mux.Handle("POST /v1/announcements", RequireAuth(verifier, http.HandlerFunc(handler.PostAnnouncement)))
	mux.Handle("DELETE /v1/announcements/{announcementID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteAnnouncement)))
}

func registerAuthorizedMediaRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/media", RequireAuth(verifier, http.HandlerFunc(handler.ListMedia)))
	mux.Handle("POST /v1/media", RequireAuth(verifier, http.HandlerFunc(handler.UploadMedia)))
	mux.Handle("DELETE /v1/media/{fileID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteMedia)))
}

func registerAuthorizedNotificationRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/notifications", RequireAuth(verifier, http.HandlerFunc(handler.ListNotifications)))
	mux.Handle("GET /v1/notifications/unread-count", RequireAuth(verifier, http.HandlerFunc(handler.GetUnreadNotificationCount)))
	mux.Handle("POST /v1/notifications/read", RequireAuth(verifier, http.HandlerFunc(handler.MarkNotificationsRead)))
}
