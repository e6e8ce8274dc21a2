package auth

import (
	"testing"
	"time"

	"gymdesk/internal/gym"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345"

var testSession = Session{
	ID:       1,
	Username: "admin_male",
	FullName: "Men's club manager",
	Role:     "admin",
	GymID:    1,
	GymName:  "Men's Club",
	GymType:  gym.BranchMale,
}

func TestHashPassword(t *testing.T) {
	t.Run("Successfully hash password", func(t *testing.T) {
		password := "admin123"
		hashed, err := HashPassword(password)

		assert.NoError(t, err)
		assert.NotEmpty(t, hashed)
		assert.NotEqual(t, password, hashed)
	})

	t.Run("Different hashes for same password", func(t *testing.T) {
		hash1, _ := HashPassword("samePassword")
		hash2, _ := HashPassword("samePassword")

		assert.NotEqual(t, hash1, hash2)
	})
}

func TestCheckPassword(t *testing.T) {
	hashed, _ := HashPassword("correctPassword")

	assert.True(t, CheckPassword(hashed, "correctPassword"))
	assert.False(t, CheckPassword(hashed, "wrongPassword"))
	assert.False(t, CheckPassword(hashed, ""))
}

func TestGenerateAccessToken(t *testing.T) {
	t.Run("Token carries the session", func(t *testing.T) {
		token, err := GenerateAccessToken(testSession, testSecret)
		require.NoError(t, err)

		claims, err := ValidateToken(token, testSecret)
		require.NoError(t, err)

		assert.Equal(t, testSession, claims.Session)
		assert.Equal(t, "access", claims.TokenType)
		assert.Equal(t, jwtIssuer, claims.Issuer)
		assert.Contains(t, claims.Audience, jwtAudience)
	})

	t.Run("Fail with empty secret", func(t *testing.T) {
		token, err := GenerateAccessToken(testSession, "")

		assert.Equal(t, ErrEmptyJWTSecret, err)
		assert.Empty(t, token)
	})
}

func TestGenerateTokens(t *testing.T) {
	accessToken, refreshToken, err := GenerateTokens(testSession, testSecret)

	require.NoError(t, err)
	assert.NotEqual(t, accessToken, refreshToken)

	_, _, err = GenerateTokens(testSession, "")
	assert.Error(t, err)
}

func TestValidateToken(t *testing.T) {
	token, _ := GenerateAccessToken(testSession, testSecret)

	t.Run("Fail with empty secret", func(t *testing.T) {
		claims, err := ValidateToken(token, "")
		assert.Equal(t, ErrEmptyJWTSecret, err)
		assert.Nil(t, claims)
	})

	t.Run("Fail with wrong secret", func(t *testing.T) {
		claims, err := ValidateToken(token, "wrong-secret")
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Fail with invalid token format", func(t *testing.T) {
		claims, err := ValidateToken("invalid.token.format", testSecret)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Fail with expired token", func(t *testing.T) {
		pastTime := time.Now().Add(-1 * time.Hour)
		claims := &JWTClaims{
			Session:   testSession,
			TokenType: "access",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    jwtIssuer,
				Audience:  []string{jwtAudience},
				ExpiresAt: jwt.NewNumericDate(pastTime),
				IssuedAt:  jwt.NewNumericDate(pastTime.Add(-AccessTokenTTL)),
			},
		}
		tokenString, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))

		validated, err := ValidateToken(tokenString, testSecret)
		assert.Equal(t, ErrTokenExpired, err)
		assert.Nil(t, validated)
	})
}

func TestParseRefreshToken(t *testing.T) {
	t.Run("Accepts a refresh token", func(t *testing.T) {
		refreshToken, _ := GenerateRefreshToken(testSession, testSecret)

		claims, err := ParseRefreshToken(refreshToken, testSecret)
		require.NoError(t, err)
		assert.Equal(t, testSession.GymID, claims.GymID)
		assert.Equal(t, gym.BranchMale, claims.GymType)
	})

	t.Run("Rejects an access token", func(t *testing.T) {
		accessToken, _ := GenerateAccessToken(testSession, testSecret)

		claims, err := ParseRefreshToken(accessToken, testSecret)
		assert.Equal(t, ErrInvalidTokenType, err)
		assert.Nil(t, claims)
	})

	t.Run("Rejects a malformed token", func(t *testing.T) {
		claims, err := ParseRefreshToken("invalid.token", testSecret)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})
}

func TestTokenExpiration(t *testing.T) {
	token, err := GenerateRefreshToken(testSession, testSecret)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)

	diff := claims.ExpiresAt.Time.Sub(time.Now().Add(RefreshTokenTTL)).Abs()
	assert.Less(t, diff, 2*time.Second)
}
