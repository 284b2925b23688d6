package accounts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/cleared-dev/ledgerkit/internal/journal"
	"github.com/cleared-dev/ledgerkit/internal/model"
)

// ErrUnknownAccount is returned by Resolve when no account matches.
var ErrUnknownAccount = errors.New("unknown account")

// maxSuggestDistance bounds how far a "did you mean" candidate may be from the query.
const maxSuggestDistance = 3

// Service provides in-memory lookup over the chart of accounts.
type Service struct {
	accounts []model.Account
	byID     map[model.AccountID]model.Account
	byCode   map[model.AccountCode]model.Account
}

// NewService creates a Service from a slice of accounts.
func NewService(accounts []model.Account) *Service {
	byID := make(map[model.AccountID]model.Account, len(accounts))
	byCode := make(map[model.AccountCode]model.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
		if a.Code != "" {
			byCode[a.Code] = a
		}
	}
	return &Service{accounts: accounts, byID: byID, byCode: byCode}
}

// Path returns the chart-of-accounts location under a ledger root.
func Path(repoRoot string) string {
	return filepath.Join(repoRoot, "accounts", "chart-of-accounts.csv")
}

// Load reads chart-of-accounts.csv from a repo root and returns a Service.
func Load(repoRoot string) (*Service, error) {
	f, err := os.Open(Path(repoRoot))
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewService(accts), nil
}

// All returns all accounts.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Get returns an account by ID.
func (s *Service) Get(id model.AccountID) (model.Account, bool) {
	a, ok := s.byID[id]
	return a, ok
}

// ByCode returns an account by code.
func (s *Service) ByCode(code model.AccountCode) (model.Account, bool) {
	a, ok := s.byCode[code]
	return a, ok
}

// Exists reports whether an account ID exists.
func (s *Service) Exists(id model.AccountID) bool {
	_, ok := s.byID[id]
	return ok
}

// Name returns the account name for id, or "" when unknown.
func (s *Service) Name(id model.AccountID) string {
	return s.byID[id].Name
}

// ByType returns all accounts of the given type.
func (s *Service) ByType(accountType model.AccountType) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Type == accountType {
			result = append(result, a)
		}
	}
	return result
}

// RoleAccounts maps each posting role to the account carrying the role's
// code. Roles without such an account are left out.
func (s *Service) RoleAccounts() journal.RoleAccounts {
	roles := make(journal.RoleAccounts)
	for _, role := range model.Roles() {
		if a, ok := s.byCode[role.Code()]; ok {
			roles[role] = a.ID
		}
	}
	return roles
}

// Resolve finds an account by ID, code or case-insensitive name. On a miss
// the error lists close matches.
func (s *Service) Resolve(ref string) (model.Account, error) {
	if a, ok := s.byID[model.AccountID(ref)]; ok {
		return a, nil
	}
	if a, ok := s.byCode[model.AccountCode(ref)]; ok {
		return a, nil
	}
	for _, a := range s.accounts {
		if strings.EqualFold(a.Name, ref) {
			return a, nil
		}
	}

	suggestions := s.Suggest(ref, 3)
	if len(suggestions) == 0 {
		return model.Account{}, fmt.Errorf("%q: %w", ref, ErrUnknownAccount)
	}
	names := make([]string, len(suggestions))
	for i, a := range suggestions {
		names[i] = fmt.Sprintf("%s (%s)", a.ID, a.Name)
	}
	return model.Account{}, fmt.Errorf("%q: %w; did you mean %s?", ref, ErrUnknownAccount, strings.Join(names, ", "))
}

// Suggest returns up to limit accounts whose ID or name is within a small
// edit distance of query, closest first.
func (s *Service) Suggest(query string, limit int) []model.Account {
	type match struct {
		acct model.Account
		dist int
	}
	q := strings.ToLower(query)

	var matches []match
	for _, a := range s.accounts {
		d := min(
			levenshtein.ComputeDistance(q, strings.ToLower(string(a.ID))),
			levenshtein.ComputeDistance(q, strings.ToLower(a.Name)),
		)
		if d <= maxSuggestDistance {
			matches = append(matches, match{acct: a, dist: d})
		}
	}
	slices.SortStableFunc(matches, func(a, b match) int { return a.dist - b.dist })

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]model.Account, len(matches))
	for i, m := range matches {
		out[i] = m.acct
	}
	return out
}

// Save writes the chart of accounts to accounts/chart-of-accounts.csv.
func (s *Service) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, "accounts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	f, err := os.Create(Path(repoRoot))
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}
