package services

import (
	"errors"
	"fmt"
	"time"

	"shopapi/internal/models"
	"shopapi/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration and the whole session lifecycle: minting
// bearer tokens on login, validating them on every protected request, and
// removing or replacing them on logout and renewal. A user's live sessions
// are the entries of their Tokens list; a token missing from that list is
// revoked no matter what its claims say.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  7 * 24 * time.Hour,
	}
}

// LoginResult is returned by Login. Cart is the sum of cart line quantities.
type LoginResult struct {
	Token   string      `json:"token"`
	Account string      `json:"account"`
	Email   string      `json:"email"`
	Role    models.Role `json:"role"`
	Cart    int         `json:"cart"`
}

// Register creates a new user with a bcrypt-hashed password. The password is
// validated before hashing; plaintext never reaches the repository.
func (s *AuthService) Register(account, email, password string) error {
	if len(password) < 4 || len(password) > 20 {
		return ErrPasswordLength
	}

	if _, err := s.userRepo.GetByAccount(account); err == nil {
		return ErrDuplicateAccount
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to check account: %w", err)
	}
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return ErrDuplicateEmail
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Account:  account,
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// Login authenticates the account and opens a new session: a fresh token is
// appended to the user's live-token list and the user is saved. A missing
// account and a wrong password are distinct failures.
func (s *AuthService) Login(account, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByAccount(account)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}

	token, err := s.mintToken(user.ID)
	if err != nil {
		return nil, err
	}
	user.Tokens = append(user.Tokens, token)
	if err := s.userRepo.Save(user); err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:   token,
		Account: user.Account,
		Email:   user.Email,
		Role:    user.Role,
		Cart:    user.CartQuantity(),
	}, nil
}

// Logout removes the presented token from the user's live-token list.
// Removing a token that is already absent is not an error, so a second
// logout with the same token succeeds the same way.
func (s *AuthService) Logout(user *models.User, token string) error {
	kept := make([]string, 0, len(user.Tokens))
	for _, t := range user.Tokens {
		if t != token {
			kept = append(kept, t)
		}
	}
	user.Tokens = kept
	return s.userRepo.Save(user)
}

// Extend swaps the presented token for a freshly minted one in the same slot
// of the live-token list, preserving session order. The caller reaches this
// through the expiry-exempt path, so a just-expired token can still renew.
func (s *AuthService) Extend(user *models.User, token string) (string, error) {
	idx := -1
	for i, t := range user.Tokens {
		if t == token {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", ErrTokenRevoked
	}

	fresh, err := s.mintToken(user.ID)
	if err != nil {
		return "", err
	}
	user.Tokens[idx] = fresh
	if err := s.userRepo.Save(user); err != nil {
		return "", err
	}
	return fresh, nil
}

// Authenticate resolves a bearer token to its user. The signature check and
// the revocation check (token still present in the user's live-token list)
// are unconditional; the expiry check is skipped when allowExpired is set,
// which is how the logout and renewal endpoints accept stale tokens.
func (s *AuthService) Authenticate(tokenString string, allowExpired bool) (*models.User, error) {
	parser := &jwt.Parser{SkipClaimsValidation: true}
	token, err := parser.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrMalformedToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrMalformedToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, ErrMalformedToken
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, ErrMalformedToken
	}

	if time.Now().Unix() > int64(exp) && !allowExpired {
		return nil, ErrSessionExpired
	}

	user, err := s.userRepo.GetByID(userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrTokenRevoked
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	for _, t := range user.Tokens {
		if t == tokenString {
			return user, nil
		}
	}
	return nil, ErrTokenRevoked
}

func (s *AuthService) mintToken(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}
