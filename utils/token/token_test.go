package token

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestGenerateAndValidateToken(t *testing.T) {
	userID := uuid.New()

	signed, err := GenerateToken(userID, "alice@example.com", "Alice", secret, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(signed, secret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "Alice", claims.Name)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestGenerateToken_UniqueIDs(t *testing.T) {
	userID := uuid.New()
	first, err := GenerateToken(userID, "a@example.com", "A", secret, time.Hour)
	require.NoError(t, err)
	second, err := GenerateToken(userID, "a@example.com", "A", secret, time.Hour)
	require.NoError(t, err)

	c1, err := ValidateToken(first, secret)
	require.NoError(t, err)
	c2, err := ValidateToken(second, secret)
	require.NoError(t, err)
	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestValidateToken_Rejects(t *testing.T) {
	signed, err := GenerateToken(uuid.New(), "a@example.com", "A", secret, time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(signed, []byte("other-secret"))
	assert.Error(t, err)

	expired, err := GenerateToken(uuid.New(), "a@example.com", "A", secret, -time.Hour)
	require.NoError(t, err)
	_, err = ValidateToken(expired, secret)
	assert.Error(t, err)

	_, err = ValidateToken("not-a-token", secret)
	assert.Error(t, err)
}

func TestExtractToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{"missing", "", "", ErrAuthHeaderMissing},
		{"wrong scheme", "Basic abc", "", ErrInvalidAuthFormat},
		{"empty token", "Bearer ", "", ErrInvalidAuthFormat},
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}

			got, err := ExtractToken(c)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
