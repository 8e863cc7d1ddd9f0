package users

import (
	"context"
	"fmt"
	"os/user"

	"github.com/upb/greeting-app/internal/auth"
	"github.com/upb/greeting-app/models"
	"github.com/upb/greeting-app/services"
	"go.uber.org/zap"
)

// UsernameLookup resolves the name of the OS user running the process.
type UsernameLookup interface {
	CurrentUsername() (string, error)
}

// OSUsernameLookup reads the current user from the operating system.
type OSUsernameLookup struct{}

// CurrentUsername implements UsernameLookup.
func (OSUsernameLookup) CurrentUsername() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return u.Username, nil
}

// directory is the fixed record set searched by Search.
var directory = []models.UserRecord{
	{ID: 1, Name: "John Doe", Email: "john@example.com"},
	{ID: 2, Name: "Jane Smith", Email: "jane@example.com"},
}

// members is the fixed record set returned by List.
var members = []models.UserRecord{
	{ID: 1, Name: "John Doe", Role: string(auth.RoleAdmin)},
	{ID: 2, Name: "Jane Smith", Role: string(auth.RoleUser)},
	{ID: 3, Name: "Bob Wilson", Role: string(auth.RoleGuest)},
}

// SearchQuery holds the optional search filters.
type SearchQuery struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// SearchResult is the outcome of a search.
type SearchResult struct {
	Query   SearchQuery         `json:"query"`
	Results []models.UserRecord `json:"results"`
	Total   int                 `json:"total"`
}

// DeleteResult acknowledges a deletion. Nothing is removed.
type DeleteResult struct {
	Message   string         `json:"message"`
	DeletedBy *auth.Identity `json:"deletedBy"`
}

// Service serves the mock user endpoints.
type Service struct {
	lookup UsernameLookup
	logger *zap.Logger
}

// NewService creates a new users Service
func NewService(lookup UsernameLookup, logger *zap.Logger) *Service {
	if lookup == nil {
		lookup = OSUsernameLookup{}
	}
	return &Service{
		lookup: lookup,
		logger: logger,
	}
}

// Username returns the OS username of the server process.
func (s *Service) Username(ctx context.Context) (string, error) {
	name, err := s.lookup.CurrentUsername()
	if err != nil {
		return "", services.WrapInternal("Failed to get username", err)
	}
	return name, nil
}

// Search filters the directory by case-insensitive substring on name and
// email. Empty filters match every record.
func (s *Service) Search(ctx context.Context, q SearchQuery) *SearchResult {
	results := make([]models.UserRecord, 0, len(directory))
	for _, rec := range directory {
		if rec.MatchesName(q.Username) && rec.MatchesEmail(q.Email) {
			results = append(results, rec)
		}
	}

	s.logger.Debug("user search",
		zap.String("username", q.Username),
		zap.String("email", q.Email),
		zap.Int("total", len(results)))

	return &SearchResult{
		Query:   q,
		Results: results,
		Total:   len(results),
	}
}

// List returns a copy of the mock member list.
func (s *Service) List(ctx context.Context) []models.UserRecord {
	out := make([]models.UserRecord, len(members))
	copy(out, members)
	return out
}

// Delete acknowledges a deletion request for id on behalf of by.
func (s *Service) Delete(ctx context.Context, id string, by *auth.Identity) *DeleteResult {
	s.logger.Info("user deletion acknowledged",
		zap.String("user_id", id),
		zap.String("deleted_by", by.ID))

	return &DeleteResult{
		Message:   fmt.Sprintf("User %s deleted successfully", id),
		DeletedBy: by,
	}
}
