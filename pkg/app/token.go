package app

import (
	"fmt"
	"time"

	"github.com/micbed86/FancyNote-sub000/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Default token issuer
const DefaultTokenIssuer = "fancynote-service"

// DefaultFileTokenExpiry bounds the lifetime of attachment access tokens
// handed to external fetchers (LLM providers retrieving images).
const DefaultFileTokenExpiry = 15 * time.Minute

// TokenConfig defines the token manager configuration.
type TokenConfig struct {
	SecretKey    string        `yaml:"secret-key"`    // JWT signing key
	Expiry       time.Duration `yaml:"expiry"`        // user token lifetime, default 7 days
	Issuer       string        `yaml:"issuer"`        // token issuer
	FileTokenKey string        `yaml:"file-token-key"` // signing key for short-lived file tokens
	FileExpiry   time.Duration `yaml:"file-expiry"`   // file token lifetime
}

// TokenManager issues and validates the two token kinds the API uses.
type TokenManager interface {
	Generate(uid int64, nickname, ip string) (string, error)
	Parse(token string) (*UserEntity, error)
	GenerateFileToken(uid int64, path string) (string, error)
	ParseFileToken(token string) (*FileEntity, error)
	GetSecretKey() string
}

type tokenManager struct {
	config TokenConfig
}

// NewTokenManager creates a TokenManager instance.
func NewTokenManager(cfg TokenConfig) TokenManager {
	if cfg.Expiry == 0 {
		cfg.Expiry = 7 * 24 * time.Hour
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultTokenIssuer
	}
	if cfg.FileTokenKey == "" {
		cfg.FileTokenKey = cfg.SecretKey
	}
	if cfg.FileExpiry == 0 {
		cfg.FileExpiry = DefaultFileTokenExpiry
	}
	return &tokenManager{config: cfg}
}

// UserEntity represents the user data stored in the JWT.
type UserEntity struct {
	UID      int64  `json:"uid"`
	Nickname string `json:"nickname"`
	IP       string `json:"ip"`
	jwt.RegisteredClaims
}

// FileEntity represents a short-lived attachment access grant.
type FileEntity struct {
	UID  int64  `json:"uid"`
	Path string `json:"path"`
	jwt.RegisteredClaims
}

// Generate issues a new user JWT.
func (t *tokenManager) Generate(uid int64, nickname, ip string) (string, error) {
	expirationTime := time.Now().Add(t.config.Expiry)
	claims := &UserEntity{
		UID:      uid,
		Nickname: nickname,
		IP:       ip,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    t.config.Issuer,
			Subject:   "user-token",
			ID:        fmt.Sprintf("%d", uid),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(t.config.SecretKey + "_" + util.GetMachineID()))
}

// Parse parses a user JWT and returns its claims.
func (t *tokenManager) Parse(token string) (*UserEntity, error) {
	return ParseTokenWithKey(token, t.config.SecretKey)
}

// GenerateFileToken issues a short-lived token granting read access to a
// single stored attachment path.
func (t *tokenManager) GenerateFileToken(uid int64, path string) (string, error) {
	claims := &FileEntity{
		UID:  uid,
		Path: path,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(t.config.FileExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    t.config.Issuer,
			Subject:   "file-token",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(t.config.FileTokenKey))
}

// ParseFileToken validates a file token and returns the granted path.
func (t *tokenManager) ParseFileToken(tokenString string) (*FileEntity, error) {
	claims := &FileEntity{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(t.config.FileTokenKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// GetSecretKey returns the user token signing key.
func (t *tokenManager) GetSecretKey() string {
	return t.config.SecretKey
}

// ParseTokenWithKey parses a user token with an explicit key.
func ParseTokenWithKey(tokenString string, secretKey string) (*UserEntity, error) {
	claims := &UserEntity{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey + "_" + util.GetMachineID()), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// GetUID extracts the user ID from the request context.
func GetUID(ctx *gin.Context) (out int64) {
	user, exist := ctx.Get("user_token")
	if exist {
		if userEntity, ok := user.(*UserEntity); ok {
			out = userEntity.UID
		}
	}
	return
}

// GetIP extracts the user IP from the request context.
func GetIP(ctx *gin.Context) (out string) {
	user, exist := ctx.Get("user_token")
	if exist {
		if userEntity, ok := user.(*UserEntity); ok {
			out = userEntity.IP
		}
	}
	return
}
