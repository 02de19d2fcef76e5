package session

import (
	"crypto/sha256"
	"encoding/gob"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	log "github.com/sirupsen/logrus"
)

const (
	CookieName = "__session"
	dataField  = "data"
)

func init() {
	gob.Register(Data{})
}

// Store keeps the session data in a signed and encrypted cookie.
type Store struct {
	cookies *sessions.CookieStore
}

func NewStore(secret string, maxAgeDays int, secure bool) *Store {
	hashKey := sha256.Sum256([]byte("hash:" + secret))
	blockKey := sha256.Sum256([]byte("block:" + secret))
	cookies := sessions.NewCookieStore(hashKey[:], blockKey[:])
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAgeDays * 24 * 60 * 60,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{cookies: cookies}
}

// Load returns the session data of r, or ErrNoSession when the cookie is
// missing, tampered with or lacks credentials.
func (s *Store) Load(r *http.Request) (Data, error) {
	sess, err := s.cookies.Get(r, CookieName)
	if err != nil {
		log.Debugf("discarding undecodable session cookie: %v", err)
		return Data{}, ErrNoSession
	}
	data, ok := sess.Values[dataField].(Data)
	if !ok || !data.Valid() {
		return Data{}, ErrNoSession
	}
	return data, nil
}

func (s *Store) Save(w http.ResponseWriter, r *http.Request, data Data) error {
	sess, _ := s.cookies.Get(r, CookieName)
	sess.Values[dataField] = data
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Destroy expires the session cookie.
func (s *Store) Destroy(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.cookies.Get(r, CookieName)
	sess.Values = make(map[any]any)
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}
