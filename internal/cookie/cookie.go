package cookie

import (
	"bufio"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/crypto/hkdf"

	"github.com/webserv/webserv/common"
	"github.com/webserv/webserv/pkg/logger"
)

const sessionIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const sessionIDLength = 32

// Service implements spec §4.B: session generation, signing, the
// append-only cookies.txt log, and verification.
type Service struct {
	signingKey []byte
	path       string
	log        logger.Logger
	mu         sync.Mutex
}

// New derives a stable HMAC signing key from the master secret (via
// HKDF-SHA256, info="webserv-cookie-v1") and returns a Service that
// appends to cookiesPath.
func New(masterSecret []byte, cookiesPath string, l logger.Logger) (*Service, error) {
	key := make([]byte, 32)
	kdf := hkdf.New(sha256.New, masterSecret, nil, []byte("webserv-cookie-v1"))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("derive signing key: %w", err)
	}
	return &Service{signingKey: key, path: cookiesPath, log: l}, nil
}

// GenerateSessionID returns 32 random alphanumeric characters, per spec
// §4.B.
func GenerateSessionID() (string, error) {
	b := make([]byte, sessionIDLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	out := make([]byte, sessionIDLength)
	for i, v := range b {
		out[i] = sessionIDAlphabet[int(v)%len(sessionIDAlphabet)]
	}
	return string(out), nil
}

// Sign returns value + "|" + hex(HMAC-SHA256(key, value)), per spec §4.B.
func (s *Service) Sign(value string) string {
	mac := hmac.New(sha256.New, s.signingKey)
	mac.Write([]byte(value))
	return value + "|" + hex.EncodeToString(mac.Sum(nil))
}

// IssueResult carries the freshly minted, signed session cookie.
type IssueResult struct {
	SessionID string
	Signed    string
}

// Issue generates a new session, signs it, and appends "sessionId=<signed>"
// to the cookie log. Any I/O error on the log is logged and treated as
// "cookie not set" (the caller's response is still sent), per spec §4.B's
// failure-mode note — callers should check the returned error only to
// decide whether to skip emitting Set-Cookie, not to fail the request.
func (s *Service) Issue() (*IssueResult, error) {
	id, err := GenerateSessionID()
	if err != nil {
		return nil, err
	}
	signed := s.Sign(id)
	if err := s.append("sessionId=" + signed); err != nil {
		if s.log != nil {
			s.log.Error("failed to persist session cookie: %v", err)
		}
		return nil, err
	}
	return &IssueResult{SessionID: id, Signed: signed}, nil
}

func (s *Service) append(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = fmt.Fprintln(f, line)
	return err
}

// Verify reports whether signed appears, after trimming, as a whole
// trimmed line in cookies.txt. Issue writes lines in "sessionId=<id>|<hmac>"
// form, so a bare "<id>|<hmac>" value does not match.
// Any read error (including file-not-found) yields false, per spec §4.B.
func (s *Service) Verify(signed string) bool {
	f, err := os.Open(s.path)
	if err != nil {
		return false
	}
	defer f.Close()

	want := strings.TrimSpace(signed)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == want {
			return true
		}
	}
	return false
}

// ExtractFromHeader parses a raw Cookie header value of the form
// "sessionId=<signed>" and returns the full "sessionId=<signed>" line
// Verify expects, or ok=false if absent.
func ExtractFromHeader(req *common.Request) (string, bool) {
	raw, ok := req.Headers["Cookie"]
	if !ok {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	return raw, true
}

// SetCookieHeader returns the Set-Cookie header value spec §4.B requires.
func SetCookieHeader(signed string) string {
	return "sessionId=" + signed + "; Path=/; HttpOnly;"
}
