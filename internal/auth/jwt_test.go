package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avenk/careerpath-be/internal/models"
)

func TestGenerateAndValidate_Success(t *testing.T) {
	t.Parallel()

	m := NewManager("super-secret", time.Hour)
	user := models.User{ID: 42, Email: "user@example.com"}

	tok, err := m.GenerateToken(user)
	require.NoError(t, err)

	claims, err := m.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestValidateToken_Expired(t *testing.T) {
	t.Parallel()

	m := NewManager("secret", -1*time.Second)
	tok, err := m.GenerateToken(models.User{ID: 1, Email: "a@b.c"})
	require.NoError(t, err)

	_, err = m.ValidateToken(tok)
	assert.ErrorIs(t, err, models.ErrInvalidToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewManager("right-secret", time.Hour)
	verifier := NewManager("wrong-secret", time.Hour)

	tok, err := issuer.GenerateToken(models.User{ID: 1, Email: "a@b.c"})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(tok)
	assert.ErrorIs(t, err, models.ErrInvalidToken)
}

func TestValidateToken_Malformed(t *testing.T) {
	t.Parallel()

	m := NewManager("k", time.Hour)
	_, err := m.ValidateToken("not.a.jwt")
	assert.ErrorIs(t, err, models.ErrInvalidToken)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	m := NewManager("mw-secret", time.Hour)
	user := models.User{ID: 7, Email: "mw@example.com"}

	var gotClaims *Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := m.Middleware()(next)

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("valid token attaches claims", func(t *testing.T) {
		tok, err := m.GenerateToken(user)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, gotClaims)
		assert.Equal(t, user.ID, gotClaims.UserID)
	})
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"empty", "", ""},
		{"bearer", "Bearer abc", "abc"},
		{"lowercase scheme", "bearer xyz", "xyz"},
		{"wrong scheme", "Basic abc", ""},
		{"no token", "Bearer", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			assert.Equal(t, tc.want, BearerToken(req))
		})
	}
}
