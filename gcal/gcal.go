// Package gcal integrates professionals' Google Calendars: OAuth code
// exchange, lazy token refresh and event listing/creation.
package gcal

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/bba-git/bisousbisousmvp/db"
	"github.com/bba-git/bisousbisousmvp/models"
)

// Config builds the OAuth2 config from the environment, or nil when the
// integration is not configured.
func Config() *oauth2.Config {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	redirectURL := os.Getenv("GOOGLE_REDIRECT_URL")

	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil
	}

	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{calendar.CalendarEventsScope},
		Endpoint:     google.Endpoint,
	}
}

// Exchange trades an authorization code for a token tuple and persists it
// for the professional, replacing any previous credential.
func Exchange(ctx context.Context, cfg *oauth2.Config, code string, cred *models.CalendarCredential) error {
	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange code for token: %w", err)
	}

	cred.AccessToken = token.AccessToken
	cred.Expiry = token.Expiry
	if token.RefreshToken != "" {
		cred.RefreshToken = token.RefreshToken
	}
	return db.DB.Save(cred).Error
}

// serviceFor builds a Calendar client for the stored credential, refreshing
// the access token first when it has expired. A refreshed token is written
// back so the next call skips the refresh.
func serviceFor(ctx context.Context, cred *models.CalendarCredential) (*calendar.Service, error) {
	cfg := Config()
	if cfg == nil {
		return nil, fmt.Errorf("google calendar is not configured")
	}

	token := &oauth2.Token{
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
		Expiry:       cred.Expiry,
	}

	if cred.Expired() {
		refreshed, err := cfg.TokenSource(ctx, token).Token()
		if err != nil {
			return nil, fmt.Errorf("failed to refresh calendar token: %w", err)
		}
		cred.AccessToken = refreshed.AccessToken
		cred.Expiry = refreshed.Expiry
		if refreshed.RefreshToken != "" {
			cred.RefreshToken = refreshed.RefreshToken
		}
		if err := db.DB.Save(cred).Error; err != nil {
			return nil, err
		}
		token = refreshed
	}

	return calendar.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(token)))
}

// Event is the calendar event shape exposed to handlers.
type Event struct {
	ID          string    `json:"id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
}

// ListEvents returns the professional's primary-calendar events in
// [timeMin, timeMax].
func ListEvents(ctx context.Context, cred *models.CalendarCredential, timeMin, timeMax time.Time) ([]Event, error) {
	srv, err := serviceFor(ctx, cred)
	if err != nil {
		return nil, err
	}

	result, err := srv.Events.List("primary").
		SingleEvents(true).
		OrderBy("startTime").
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve events: %w", err)
	}

	var events []Event
	for _, item := range result.Items {
		event := Event{
			ID:          item.Id,
			Summary:     item.Summary,
			Description: item.Description,
			Status:      item.Status,
		}
		event.StartTime = parseEventTime(item.Start)
		event.EndTime = parseEventTime(item.End)
		events = append(events, event)
	}
	return events, nil
}

// InsertEvent creates an event on the professional's primary calendar.
func InsertEvent(ctx context.Context, cred *models.CalendarCredential, summary, description string, start, end time.Time) (*Event, error) {
	srv, err := serviceFor(ctx, cred)
	if err != nil {
		return nil, err
	}

	created, err := srv.Events.Insert("primary", &calendar.Event{
		Summary:     summary,
		Description: description,
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: "Europe/Paris",
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: "Europe/Paris",
		},
	}).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar event: %w", err)
	}

	return &Event{
		ID:          created.Id,
		Summary:     created.Summary,
		Description: created.Description,
		StartTime:   parseEventTime(created.Start),
		EndTime:     parseEventTime(created.End),
		Status:      created.Status,
	}, nil
}

func parseEventTime(edt *calendar.EventDateTime) time.Time {
	if edt == nil {
		return time.Time{}
	}
	if edt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, edt.DateTime); err == nil {
			return t
		}
	}
	if edt.Date != "" {
		if t, err := time.Parse("2006-01-02", edt.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}
