package httpapi

import (
	"time"

	"github.com/riskibarqy/teamtrack/internal/domain/availability"
	"github.com/riskibarqy/teamtrack/internal/domain/chat"
	"github.com/riskibarqy/teamtrack/internal/domain/event"
	"github.com/riskibarqy/teamtrack/internal/domain/formation"
	"github.com/riskibarqy/teamtrack/internal/domain/lineup"
	"github.com/riskibarqy/teamtrack/internal/domain/media"
	"github.com/riskibarqy/teamtrack/internal/domain/notification"
	"github.com/riskibarqy/teamtrack/internal/domain/player"
	"github.com/riskibarqy/teamtrack/internal/domain/playerstats"
	"github.com/riskibarqy/teamtrack/internal/domain/profile"
	"github.com/riskibarqy/teamtrack/internal/usecase"
)

type sessionDTO struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresAt   time.Time  `json:"expires_at"`
	Profile     profileDTO `json:"profile"`
}

type profileDTO struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	TeamName     string    `json:"team_name,omitempty"`
	Position     string    `json:"position,omitempty"`
	JerseyNumber *int      `json:"jersey_number"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	ParentOf     []string  `json:"parent_of"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type authorDTO struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type eventDTO struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Type         string              `json:"event_type"`
	EventDate    time.Time           `json:"event_date"`
	Location     string              `json:"location,omitempty"`
	Opponent     string              `json:"opponent,omitempty"`
	IsHomeGame   bool                `json:"is_home_game"`
	HomeScore    *int                `json:"home_score"`
	AwayScore    *int                `json:"away_score"`
	Result       string              `json:"result,omitempty"`
	Notes        string              `json:"notes,omitempty"`
	CreatedBy    string              `json:"created_by"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Availability *availabilitySumDTO `json:"availability,omitempty"`
}

type availabilitySumDTO struct {
	Available int `json:"available"`
	Total     int `json:"total"`
}

type availabilityDTO struct {
	EventID   string     `json:"event_id"`
	UserID    string     `json:"user_id"`
	Status    string     `json:"status"`
	Note      string     `json:"note,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
	Responder *authorDTO `json:"profiles,omitempty"`
}

type playerDTO struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Position     string    `json:"position,omitempty"`
	JerseyNumber *int      `json:"jersey_number"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	ParentID     string    `json:"parent_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type playerStatsDTO struct {
	PlayerID      string    `json:"player_id"`
	PlayerName    string    `json:"player_name,omitempty"`
	MatchesPlayed int       `json:"matches_played"`
	Goals         int       `json:"goals"`
	Assists       int       `json:"assists"`
	YellowCards   int       `json:"yellow_cards"`
	RedCards      int       `json:"red_cards"`
	CleanSheets   int       `json:"clean_sheets"`
	MinutesPlayed int       `json:"minutes_played"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

type leaderboardDTO struct {
	Items  []playerStatsDTO `json:"items"`
	Totals struct {
		Goals   int `json:"goals"`
		Assists int `json:"assists"`
		Matches int `json:"matches"`
	} `json:"totals"`
}

type slotDTO struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type formationDTO struct {
	Name     string    `json:"name"`
	Capacity int       `json:"capacity"`
	Slots    []slotDTO `json:"positions"`
}

type fieldPositionDTO struct {
	PlayerID     string  `json:"player_id"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	JerseyNumber *int    `json:"jersey_number"`
	IsSubstitute bool    `json:"is_substitute"`
}

type matchLineupDTO struct {
	ID         string             `json:"id"`
	EventID    string             `json:"event_id"`
	Formation  string             `json:"formation"`
	Positions  []fieldPositionDTO `json:"player_positions"`
	CreatedBy  string             `json:"created_by"`
	IsHomeGame bool               `json:"is_home_game"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

type lineupPreviewDTO struct {
	Formation   formationDTO       `json:"formation"`
	SelectedIDs []string           `json:"selected_ids"`
	Positions   []fieldPositionDTO `json:"player_positions"`
}

type startingPickDTO struct {
	ID         string    `json:"id"`
	EventID    string    `json:"event_id"`
	PlayerID   string    `json:"player_id"`
	Position   string    `json:"position"`
	IsStarting bool      `json:"is_starting"`
	CreatedAt  time.Time `json:"created_at"`
}

type matchBuilderDTO struct {
	Match            *eventDTO       `json:"match"`
	AvailablePlayers []playerDTO     `json:"available_players"`
	Lineup           *matchLineupDTO `json:"lineup"`
	Formations       []formationDTO  `json:"formations"`
}

type messageDTO struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	Author    *authorDTO `json:"profiles,omitempty"`
}

type announcementDTO struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Priority  string     `json:"priority"`
	CreatedAt time.Time  `json:"created_at"`
	Author    *authorDTO `json:"profiles,omitempty"`
}

type mediaFileDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FileURL   string    `json:"file_url"`
	FilePath  string    `json:"file_path"`
	FileName  string    `json:"file_name"`
	FileType  string    `json:"file_type"`
	FileSize  int64     `json:"file_size"`
	MimeType  string    `json:"mime_type"`
	Caption   string    `json:"caption,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type notificationDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type homeDTO struct {
	Profile     profileDTO `json:"profile"`
	NextEvent   *eventDTO  `json:"next_event"`
	LastResult  *eventDTO  `json:"last_result"`
	UnreadCount int        `json:"unread_notifications"`
	SquadSize   int        `json:"squad_size"`
}

func sessionToDTO(v usecase.Session) sessionDTO {
	return sessionDTO{
		AccessToken: v.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   v.ExpiresAt,
		Profile:     profileToDTO(v.Profile),
	}
}

func profileToDTO(v profile.Profile) profileDTO {
	parentOf := v.ParentOf
	if parentOf == nil {
		parentOf = []string{}
	}
	return profileDTO{
		ID:           v.ID,
		Email:        v.Email,
		FullName:     v.FullName,
		Role:         string(v.Role),
		TeamName:     v.TeamName,
		Position:     v.Position,
		JerseyNumber: v.JerseyNumber,
		AvatarURL:    v.AvatarURL,
		ParentOf:     parentOf,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func authorToDTO(v profile.Profile) *authorDTO {
	if v.ID == "" {
		return nil
	}
	return &authorDTO{
		ID:        v.ID,
		FullName:  v.FullName,
		Role:      string(v.Role),
		AvatarURL: v.AvatarURL,
	}
}

func eventToDTO(v event.Event) eventDTO {
	return eventDTO{
		ID:         v.ID,
		Title:      v.Title,
		Type:       string(v.Type),
		EventDate:  v.EventDate,
		Location:   v.Location,
		Opponent:   v.Opponent,
		IsHomeGame: v.IsHomeGame,
		HomeScore:  v.HomeScore,
		AwayScore:  v.AwayScore,
		Result:     string(v.Result),
		Notes:      v.Notes,
		CreatedBy:  v.CreatedBy,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

func eventWithAvailabilityToDTO(v usecase.EventWithAvailability) eventDTO {
	out := eventToDTO(v.Event)
	out.Availability = &availabilitySumDTO{Available: v.Availability.Available, Total: v.Availability.Total}
	return out
}

func optionalEventDTO(v event.Event, ok bool) *eventDTO {
	if !ok {
		return nil
	}
	out := eventToDTO(v)
	return &out
}

func availabilityToDTO(v availability.Availability) availabilityDTO {
	return availabilityDTO{
		EventID:   v.EventID,
		UserID:    v.UserID,
		Status:    string(v.Status),
		Note:      v.Note,
		UpdatedAt: v.UpdatedAt,
	}
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:           v.ID,
		FullName:     v.FullName,
		Position:     v.Position,
		JerseyNumber: v.JerseyNumber,
		AvatarURL:    v.AvatarURL,
		ParentID:     v.ParentID,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func playersToDTO(items []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerToDTO(item))
	}
	return out
}

func statsToDTO(v playerstats.Stats, playerName string) playerStatsDTO {
	return playerStatsDTO{
		PlayerID:      v.PlayerID,
		PlayerName:    playerName,
		MatchesPlayed: v.MatchesPlayed,
		Goals:         v.Goals,
		Assists:       v.Assists,
		YellowCards:   v.YellowCards,
		RedCards:      v.RedCards,
		CleanSheets:   v.CleanSheets,
		MinutesPlayed: v.MinutesPlayed,
		UpdatedAt:     v.UpdatedAt,
	}
}

func leaderboardToDTO(v usecase.Leaderboard) leaderboardDTO {
	out := leaderboardDTO{Items: make([]playerStatsDTO, 0, len(v.Items))}
	for _, item := range v.Items {
		out.Items = append(out.Items, statsToDTO(item.Stats, item.PlayerName))
	}
	out.Totals.Goals = v.Totals.Goals
	out.Totals.Assists = v.Totals.Assists
	out.Totals.Matches = v.Totals.Matches
	return out
}

func formationToDTO(v formation.Formation) formationDTO {
	slots := make([]slotDTO, 0, len(v.Slots))
	for _, slot := range v.Slots {
		slots = append(slots, slotDTO{X: slot.X, Y: slot.Y})
	}
	return formationDTO{Name: v.Name, Capacity: len(v.Slots), Slots: slots}
}

func lineupPreviewToDTO(v usecase.LineupPreview) lineupPreviewDTO {
	positions := make([]fieldPositionDTO, 0, len(v.Placements))
	for _, p := range v.Placements {
		positions = append(positions, fieldPositionDTO{PlayerID: p.PlayerID, X: p.Slot.X, Y: p.Slot.Y})
	}
	return lineupPreviewDTO{
		Formation:   formationToDTO(v.Formation),
		SelectedIDs: v.Selected,
		Positions:   positions,
	}
}

func matchLineupToDTO(v lineup.MatchLineup) matchLineupDTO {
	positions := make([]fieldPositionDTO, 0, len(v.Positions))
	for _, p := range v.Positions {
		positions = append(positions, fieldPositionDTO{
			PlayerID:     p.PlayerID,
			X:            p.X,
			Y:            p.Y,
			JerseyNumber: p.JerseyNumber,
			IsSubstitute: p.IsSubstitute,
		})
	}
	return matchLineupDTO{
		ID:         v.ID,
		EventID:    v.EventID,
		Formation:  v.Formation,
		Positions:  positions,
		CreatedBy:  v.CreatedBy,
		IsHomeGame: v.IsHomeGame,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

func startingPicksToDTO(items []lineup.StartingPick) []startingPickDTO {
	out := make([]startingPickDTO, 0, len(items))
	for _, item := range items {
		out = append(out, startingPickDTO{
			ID:         item.ID,
			EventID:    item.EventID,
			PlayerID:   item.PlayerID,
			Position:   item.Position,
			IsStarting: item.IsStarting,
			CreatedAt:  item.CreatedAt,
		})
	}
	return out
}

func matchBuilderToDTO(v usecase.MatchBuilder) matchBuilderDTO {
	out := matchBuilderDTO{
		Match:            optionalEventDTO(v.Match, v.HasMatch),
		AvailablePlayers: playersToDTO(v.AvailablePlayers),
		Formations:       make([]formationDTO, 0, len(v.Formations)),
	}
	if v.HasLineup {
		l := matchLineupToDTO(v.Lineup)
		out.Lineup = &l
	}
	for _, f := range v.Formations {
		out.Formations = append(out.Formations, formationToDTO(f))
	}
	return out
}

func messageToDTO(v usecase.MessageView) messageDTO {
	return messageDTO{
		ID:        v.Message.ID,
		UserID:    v.Message.UserID,
		Content:   v.Message.Content,
		CreatedAt: v.Message.CreatedAt,
		Author:    authorToDTO(v.Author),
	}
}

func announcementToDTO(v usecase.AnnouncementView) announcementDTO {
	return announcementDTO{
		ID:        v.Announcement.ID,
		UserID:    v.Announcement.UserID,
		Title:     v.Announcement.Title,
		Content:   v.Announcement.Content,
		Priority:  string(normalizedPriority(v.Announcement.Priority)),
		CreatedAt: v.Announcement.CreatedAt,
		Author:    authorToDTO(v.Author),
	}
}

func normalizedPriority(p chat.Priority) chat.Priority {
	if p == "" {
		return chat.PriorityNormal
	}
	return p
}

func mediaFileToDTO(v media.File) mediaFileDTO {
	return mediaFileDTO{
		ID:        v.ID,
		UserID:    v.UserID,
		FileURL:   v.FileURL,
		FilePath:  v.FilePath,
		FileName:  v.FileName,
		FileType:  string(v.FileType),
		FileSize:  v.FileSize,
		MimeType:  v.MimeType,
		Caption:   v.Caption,
		CreatedAt: v.CreatedAt,
	}
}

func notificationToDTO(v notification.Notification) notificationDTO {
	return notificationDTO{
		ID:        v.ID,
		UserID:    v.UserID,
		Type:      string(v.Type),
		Title:     v.Title,
		Message:   v.Message,
		IsRead:    v.IsRead,
		CreatedAt: v.CreatedAt,
	}
}

func homeToDTO(v usecase.Home) homeDTO {
	return homeDTO{
		Profile:     profileToDTO(v.Profile),
		NextEvent:   optionalEventDTO(v.NextEvent, v.HasNextEvent),
		LastResult:  optionalEventDTO(v.LastResult, v.HasLastResult),
		UnreadCount: v.UnreadCount,
		SquadSize:   v.SquadSize,
	}
}
