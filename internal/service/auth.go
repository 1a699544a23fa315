package service

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stashbin/stashbin/internal/model"
	"github.com/stashbin/stashbin/internal/repository"
	"github.com/stashbin/stashbin/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidSession     = errors.New("invalid session")
)

const sessionCookieName = "session_token"

type AuthService struct {
	userRepository    repository.UserRepository
	sessionRepository repository.SessionRepository
	sessionSecret     string
	isProduction      bool
	sessionExpiry     time.Duration
}

func NewAuthService(
	userRepository repository.UserRepository,
	sessionRepository repository.SessionRepository,
	sessionSecret string,
	isProduction bool,
	sessionExpiry time.Duration,
) *AuthService {
	return &AuthService{
		userRepository:    userRepository,
		sessionRepository: sessionRepository,
		sessionSecret:     sessionSecret,
		isProduction:      isProduction,
		sessionExpiry:     sessionExpiry,
	}
}

func (s *AuthService) Register(email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, err
	}

	err = validation.ValidatePassword(password)
	if err != nil {
		return nil, err
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	err = s.userRepository.Create(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *AuthService) Login(email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	err = s.ComparePassword(password, user.PasswordHash)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// StartSession persists a session row for the user and returns the signed
// cookie value. The JWT only names the session; the row is authoritative.
func (s *AuthService) StartSession(user *model.User) (string, *model.Session, error) {
	session := &model.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.sessionExpiry),
		CreatedAt: time.Now(),
	}

	err := s.sessionRepository.Create(session)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create session: %w", err)
	}

	claims := jwt.MapClaims{
		"session_id": session.ID,
		"user_id":    user.ID,
		"exp":        session.ExpiresAt.Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.sessionSecret))
	if err != nil {
		return "", nil, err
	}

	return tokenString, session, nil
}

// Authenticate resolves a cookie value back to its user. An expired session
// row is deleted on sight so the table does not accumulate dead sessions.
func (s *AuthService) Authenticate(tokenString string) (*model.User, *model.Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.sessionSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, nil, ErrInvalidSession
	}

	sessionID, ok := claims["session_id"].(string)
	if !ok {
		return nil, nil, ErrInvalidSession
	}

	session, err := s.sessionRepository.ByID(sessionID)
	if err != nil {
		return nil, nil, ErrInvalidSession
	}

	if session.IsExpired() {
		delErr := s.sessionRepository.Delete(session.ID)
		if delErr != nil {
			return nil, nil, fmt.Errorf("failed to delete expired session: %w", delErr)
		}
		return nil, nil, ErrInvalidSession
	}

	user, err := s.userRepository.ByID(session.UserID)
	if err != nil {
		return nil, nil, ErrInvalidSession
	}

	return user, session, nil
}

func (s *AuthService) EndSession(sessionID string) error {
	return s.sessionRepository.Delete(sessionID)
}

func (s *AuthService) SetSessionCookie(w http.ResponseWriter, token string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Expires:  expiry,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionCookie extracts the raw session token from a request, if present.
func SessionCookie(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return "", false
	}
	return cookie.Value, true
}
