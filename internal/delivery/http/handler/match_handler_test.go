package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"skillsync/internal/delivery/http/middleware"
	"skillsync/internal/domain/matching"
	"skillsync/internal/domain/profile"
	"skillsync/internal/pkg/jwt"
	"skillsync/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMatching struct {
	userID  uuid.UUID
	offered []string
	wanted  []string
	limit   int
	calls   []string

	results  []matching.MatchResult
	profiles []profile.Profile
	popular  []matching.SkillCount
	err      error
}

func (f *fakeMatching) FindMatchesForUser(ctx context.Context, requesterID uuid.UUID, opts ...usecase.MatchOption) ([]matching.MatchResult, error) {
	f.calls = append(f.calls, "user")
	f.userID = requesterID
	f.limit, _ = usecase.ResolveLimit(opts, usecase.DefaultUserMatchLimit)
	return f.results, f.err
}

func (f *fakeMatching) FindMatchesBySkills(ctx context.Context, offered, wanted []string, opts ...usecase.MatchOption) ([]profile.Profile, error) {
	f.calls = append(f.calls, "skills")
	f.offered, f.wanted = offered, wanted
	f.limit, _ = usecase.ResolveLimit(opts, usecase.DefaultSkillsMatchLimit)
	return f.profiles, f.err
}

func (f *fakeMatching) GetPopularSkills(ctx context.Context, limit int) ([]matching.SkillCount, error) {
	f.calls = append(f.calls, "popular")
	f.limit = limit
	return f.popular, f.err
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

const testSecret = "handler-test-secret"

func newTestApp(uc usecase.MatchingUsecase) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())

	auth := middleware.NewAuthMiddleware(jwt.NewHMACService(testSecret, time.Hour))
	v1 := app.Group("/api/v1", auth.Optional())
	matches := NewMatchHandler(uc, 50)
	matches.RegisterMeRoutes(v1.Group("/me", auth.Middleware()))
	matches.RegisterRoutes(v1)
	NewSkillHandler(uc, 10, 50).RegisterRoutes(v1)
	return app
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) envelope {
	t.Helper()

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	require.Equal(t, resp.StatusCode, env.Status)
	return env
}

func TestGetMatches_AnonymousSearchesBySkills(t *testing.T) {
	uc := &fakeMatching{profiles: []profile.Profile{{ID: uuid.New(), SkillsOffered: []string{"Go"}, Rating: 4.5}}}
	app := newTestApp(uc)

	env := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/matches?offered=Go,%20SQL,&wanted=Rust", nil))

	assert.Equal(t, fiber.StatusOK, env.Status)
	assert.Equal(t, []string{"skills"}, uc.calls)
	assert.Equal(t, []string{"Go", "SQL"}, uc.offered)
	assert.Equal(t, []string{"Rust"}, uc.wanted)
	assert.Equal(t, usecase.DefaultSkillsMatchLimit, uc.limit)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.Len(t, out, 1)
	assert.Equal(t, []any{}, out[0]["skills_wanted"])
}

func TestGetMatches_AuthenticatedUsesToken(t *testing.T) {
	userID := uuid.New()
	token, err := jwt.NewHMACService(testSecret, time.Hour).GenerateAccessToken(userID)
	require.NoError(t, err)

	uc := &fakeMatching{results: []matching.MatchResult{{Candidate: profile.Profile{ID: uuid.New()}, Score: 80, Mutual: true}}}
	app := newTestApp(uc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/matches?limit=3", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	env := doRequest(t, app, req)

	assert.Equal(t, fiber.StatusOK, env.Status)
	assert.Equal(t, []string{"user"}, uc.calls)
	assert.Equal(t, userID, uc.userID)
	assert.Equal(t, 3, uc.limit)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.Len(t, out, 1)
	assert.EqualValues(t, 80, out[0]["score"])
	assert.Equal(t, true, out[0]["mutual"])
}

func TestGetMatches_InvalidTokenRejected(t *testing.T) {
	uc := &fakeMatching{}
	app := newTestApp(uc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/matches", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	env := doRequest(t, app, req)

	assert.Equal(t, fiber.StatusUnauthorized, env.Status)
	assert.Empty(t, uc.calls)
}

func TestGetMatches_LimitHandling(t *testing.T) {
	t.Run("non numeric", func(t *testing.T) {
		uc := &fakeMatching{}
		env := doRequest(t, newTestApp(uc), httptest.NewRequest(http.MethodGet, "/api/v1/matches?offered=Go&limit=ten", nil))
		assert.Equal(t, fiber.StatusBadRequest, env.Status)
		assert.Empty(t, uc.calls)
	})

	t.Run("clamped to max", func(t *testing.T) {
		uc := &fakeMatching{}
		env := doRequest(t, newTestApp(uc), httptest.NewRequest(http.MethodGet, "/api/v1/matches?offered=Go&limit=500", nil))
		assert.Equal(t, fiber.StatusOK, env.Status)
		assert.Equal(t, 50, uc.limit)
	})
}

func TestGetMatches_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid argument", fmt.Errorf("%w: skills offered and skills wanted are both empty", usecase.ErrInvalidArgument), fiber.StatusBadRequest},
		{"store unavailable", fmt.Errorf("%w: %w", profile.ErrStoreUnavailable, io.ErrUnexpectedEOF), fiber.StatusServiceUnavailable},
		{"unknown", io.ErrClosedPipe, fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &fakeMatching{err: tc.err}
			env := doRequest(t, newTestApp(uc), httptest.NewRequest(http.MethodGet, "/api/v1/matches", nil))
			assert.Equal(t, tc.status, env.Status)
		})
	}
}

func TestSearchMatches(t *testing.T) {
	uc := &fakeMatching{profiles: []profile.Profile{}}
	app := newTestApp(uc)

	body := strings.NewReader(`{"skills_offered":["Go"],"skills_wanted":["Rust"],"limit":2}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/matches/search", body)
	req.Header.Set("Content-Type", "application/json")
	env := doRequest(t, app, req)

	assert.Equal(t, fiber.StatusOK, env.Status)
	assert.Equal(t, []string{"Go"}, uc.offered)
	assert.Equal(t, []string{"Rust"}, uc.wanted)
	assert.Equal(t, 2, uc.limit)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestSearchMatches_MalformedBody(t *testing.T) {
	uc := &fakeMatching{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/matches/search", strings.NewReader(`{"skills_offered":`))
	req.Header.Set("Content-Type", "application/json")

	env := doRequest(t, newTestApp(uc), req)
	assert.Equal(t, fiber.StatusBadRequest, env.Status)
	assert.Empty(t, uc.calls)
}

func TestGetProfileMatches(t *testing.T) {
	id := uuid.New()
	uc := &fakeMatching{results: []matching.MatchResult{}}
	app := newTestApp(uc)

	env := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/profiles/"+id.String()+"/matches", nil))
	assert.Equal(t, fiber.StatusOK, env.Status)
	assert.Equal(t, id, uc.userID)
	assert.Equal(t, usecase.DefaultUserMatchLimit, uc.limit)

	env = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/profiles/not-a-uuid/matches", nil))
	assert.Equal(t, fiber.StatusBadRequest, env.Status)
}

func TestPopularSkills(t *testing.T) {
	uc := &fakeMatching{popular: []matching.SkillCount{{Skill: "A", Count: 3}, {Skill: "B", Count: 2}}}
	app := newTestApp(uc)

	env := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/skills/popular", nil))
	assert.Equal(t, fiber.StatusOK, env.Status)
	assert.Equal(t, 10, uc.limit)
	assert.JSONEq(t, `[{"skill":"A","count":3},{"skill":"B","count":2}]`, string(env.Data))

	env = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/skills/popular?limit=x", nil))
	assert.Equal(t, fiber.StatusBadRequest, env.Status)
}

func TestGetMyMatches_RequiresToken(t *testing.T) {
	uc := &fakeMatching{}
	app := newTestApp(uc)

	env := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/me/matches", nil))

	assert.Equal(t, fiber.StatusUnauthorized, env.Status)
	assert.Equal(t, "Unauthorized", env.Message)
	assert.Empty(t, uc.calls)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/matches", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	env = doRequest(t, app, req)

	assert.Equal(t, fiber.StatusUnauthorized, env.Status)
	assert.Empty(t, uc.calls)
}

func TestGetMyMatches_UsesCaller(t *testing.T) {
	userID := uuid.New()
	token, err := jwt.NewHMACService(testSecret, time.Hour).GenerateAccessToken(userID)
	require.NoError(t, err)

	uc := &fakeMatching{results: []matching.MatchResult{{Candidate: profile.Profile{ID: uuid.New()}, Score: 80}}}
	app := newTestApp(uc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/matches?limit=3", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	env := doRequest(t, app, req)

	require.Equal(t, fiber.StatusOK, env.Status)
	assert.Equal(t, []string{"user"}, uc.calls)
	assert.Equal(t, userID, uc.userID)
	assert.Equal(t, 3, uc.limit)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.Len(t, out, 1)
	assert.EqualValues(t, 80, out[0]["score"])
}
