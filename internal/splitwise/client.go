// Package splitwise imports the transactions a user owes on Splitwise as
// pending transactions.
package splitwise

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/expense-tracker/backend/internal/config"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/oauth2"
)

const (
	authURL  = "https://secure.splitwise.com/oauth/authorize"
	tokenURL = "https://secure.splitwise.com/oauth/token"
	apiBase  = "https://secure.splitwise.com/api/v3.0"
)

// User is the Splitwise account the tokens belong to.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
}

// ExpenseUser is one participant's share of an expense.
type ExpenseUser struct {
	UserID    int64           `json:"user_id"`
	OwedShare decimal.Decimal `json:"owed_share"`
}

// Expense is one Splitwise expense with all participant shares.
type Expense struct {
	ID          int64         `json:"id"`
	GroupID     *int64        `json:"group_id"`
	Description string        `json:"description"`
	Date        time.Time     `json:"date"`
	DeletedAt   *time.Time    `json:"deleted_at"`
	Users       []ExpenseUser `json:"users"`
}

// Client is the narrow view of the Splitwise API the sync needs.
type Client interface {
	CurrentUser(ctx context.Context) (User, error)
	Expenses(ctx context.Context, datedAfter time.Time) ([]Expense, error)
	Groups(ctx context.Context) (map[int64]string, error)
}

// Service holds the OAuth2 client configuration.
type Service struct {
	oauth *oauth2.Config
}

func NewService(cfg config.Splitwise) *Service {
	return &Service{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
			},
		},
	}
}

// Configured reports whether OAuth client credentials are present.
func (s *Service) Configured() bool {
	return s.oauth.ClientID != "" && s.oauth.ClientSecret != ""
}

// AuthURL returns the URL the user visits to authorize the integration.
func (s *Service) AuthURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

// Exchange trades the authorization code for a token.
func (s *Service) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return s.oauth.Exchange(ctx, code)
}

// Client builds an API client from a stored token. The returned TokenSource
// refreshes expired tokens, callers persist its current token after use.
func (s *Service) Client(ctx context.Context, token *oauth2.Token) (Client, oauth2.TokenSource) {
	ts := s.oauth.TokenSource(ctx, token)
	return &apiClient{http: oauth2.NewClient(ctx, ts)}, ts
}

// Token converts the stored connection into an OAuth2 token.
func Token(conn *models.SplitwiseConnection) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  conn.AccessToken,
		RefreshToken: conn.RefreshToken,
		Expiry:       conn.TokenExpiry,
	}
}

// ApplyToken copies a possibly refreshed token back onto the connection.
func ApplyToken(conn *models.SplitwiseConnection, token *oauth2.Token) {
	conn.AccessToken = token.AccessToken
	if token.RefreshToken != "" {
		conn.RefreshToken = token.RefreshToken
	}
	conn.TokenExpiry = token.Expiry
}

type apiClient struct {
	http *http.Client
}

func (c *apiClient) get(ctx context.Context, path string, query url.Values, out any) error {
	u := apiBase + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("splitwise API returned HTTP %d for %s", resp.StatusCode, path)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *apiClient) CurrentUser(ctx context.Context) (User, error) {
	var body struct {
		User User `json:"user"`
	}

	err := c.get(ctx, "/get_current_user", nil, &body)
	return body.User, err
}

func (c *apiClient) Expenses(ctx context.Context, datedAfter time.Time) ([]Expense, error) {
	query := url.Values{
		// limit=0 disables pagination
		"limit": []string{"0"},
	}
	if !datedAfter.IsZero() {
		query.Set("dated_after", datedAfter.In(time.UTC).Format(time.RFC3339))
	}

	var body struct {
		Expenses []Expense `json:"expenses"`
	}

	err := c.get(ctx, "/get_expenses", query, &body)
	return body.Expenses, err
}

func (c *apiClient) Groups(ctx context.Context) (map[int64]string, error) {
	var body struct {
		Groups []struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"groups"`
	}

	if err := c.get(ctx, "/get_groups", nil, &body); err != nil {
		return nil, err
	}

	groups := make(map[int64]string, len(body.Groups))
	for _, group := range body.Groups {
		groups[group.ID] = group.Name
	}

	return groups, nil
}
