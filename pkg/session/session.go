package session

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/forms-in-go/pkg/model"
)

var (
	// ErrUnknownAccount is returned when a login name resolves to no account.
	ErrUnknownAccount = errors.New("unknown account")

	// ErrAmbiguousAccount is returned when a login name resolves to more
	// than one account. Only ever the result of a broken host directory.
	ErrAmbiguousAccount = errors.New("login name resolves to multiple accounts")

	// ErrBadCredentials is returned when password verification fails.
	ErrBadCredentials = errors.New("invalid credentials")
)

// Session is an authenticated connection to the host application on behalf
// of one user. Sessions are request-scoped; the elevation gate closes the
// elevated session on every exit path.
type Session struct {
	UserID      int64
	Username    string
	Admin       bool
	ActiveGroup int64

	db *gorm.DB

	mu     sync.Mutex
	closed bool
}

// DB returns the database handle scoped to this session.
func (s *Session) DB() *gorm.DB {
	return s.db
}

// IsAdmin reports whether the session user holds host-level administrative
// capability.
func (s *Session) IsAdmin() bool {
	return s.Admin
}

// Close releases the session. Closing twice is an error; the caller owns
// the session lifecycle and double-close indicates a leak in the gate.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("session already closed")
	}
	s.closed = true
	s.db = nil
	return nil
}

// Closed reports whether the session has been released.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Store resolves and authenticates sessions against the host directory.
type Store struct {
	db *gorm.DB
}

// NewStore creates a session store backed by the host database.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// LookupUID resolves a login name to exactly one account id. Zero matches
// yields ErrUnknownAccount, more than one ErrAmbiguousAccount.
func (s *Store) LookupUID(username string) (int64, error) {
	var rows []model.Experimenter
	if err := s.db.Raw(`SELECT id FROM experimenters WHERE omename = ?`, username).Scan(&rows).Error; err != nil {
		return 0, fmt.Errorf("account lookup failed: %w", err)
	}

	switch len(rows) {
	case 0:
		return 0, ErrUnknownAccount
	case 1:
		return rows[0].ID, nil
	default:
		return 0, ErrAmbiguousAccount
	}
}

// ForUser builds a session for an already-authenticated caller. The host
// webapp performed the actual authentication; we only hydrate capability
// flags. An activeGroup of zero falls back to the user's first group.
func (s *Store) ForUser(userID int64, activeGroup int64) (*Session, error) {
	var row model.Experimenter
	tx := s.db.Raw(`SELECT id, omename, is_admin FROM experimenters WHERE id = ?`, userID).Scan(&row)
	if tx.Error != nil {
		return nil, fmt.Errorf("session lookup failed: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, ErrUnknownAccount
	}

	if activeGroup == 0 {
		var memberships []model.GroupMembership
		err := s.db.Raw(`
			SELECT group_id FROM group_memberships
			WHERE experimenter_id = ?
			ORDER BY group_id
			LIMIT 1
		`, userID).Scan(&memberships).Error
		if err != nil {
			return nil, fmt.Errorf("membership lookup failed: %w", err)
		}
		if len(memberships) > 0 {
			activeGroup = memberships[0].GroupID
		}
	}

	return &Session{
		UserID:      row.ID,
		Username:    row.OmeName,
		Admin:       row.IsAdmin,
		ActiveGroup: activeGroup,
		db:          s.db,
	}, nil
}

// Authenticate verifies credentials and opens a session as the named user.
// Used only for the forms service account; callers authenticate with the
// host webapp, never with us.
func (s *Store) Authenticate(username, password string) (*Session, error) {
	var rows []model.Experimenter
	if err := s.db.Raw(`
		SELECT id, omename, is_admin, password_hash
		FROM experimenters
		WHERE omename = ?
	`, username).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("authentication query failed: %w", err)
	}

	switch len(rows) {
	case 0:
		return nil, ErrUnknownAccount
	case 1:
	default:
		return nil, ErrAmbiguousAccount
	}

	row := rows[0]
	if err := bcrypt.CompareHashAndPassword(row.PasswordHash, []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}

	return &Session{
		UserID:      row.ID,
		Username:    row.OmeName,
		Admin:       row.IsAdmin,
		db:          s.db,
	}, nil
}
