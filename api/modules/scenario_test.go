package modules

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"tierboard/api/repositories/testutil"
	"tierboard/api/routes"
	helpers "tierboard/internal/testutil"
	"tierboard/pkg/database/models"
	"tierboard/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	router    *routes.Router
	db        *gorm.DB
	uploadDir string
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, cleanup := testutil.NewTestConnection(t)
	t.Cleanup(cleanup)

	uploadDir := t.TempDir()
	store, err := storage.NewDiskStore(uploadDir)
	require.NoError(t, err)

	module := NewModule(&ModuleDependencies{DB: db, Avatars: store})
	t.Cleanup(module.Close)

	router := routes.NewRouter(module.Router)
	router.SetupRoutes(module.LeaderboardHandler, module.MemberHandler)
	router.ServeUploads(uploadDir)

	return &testServer{router: router, db: db, uploadDir: uploadDir}
}

type envelope struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

func (s *testServer) do(t *testing.T, req *http.Request) (int, envelope) {
	t.Helper()

	w := httptest.NewRecorder()
	s.router.Engine.ServeHTTP(w, req)

	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w.Code, body
}

func (s *testServer) json(t *testing.T, method string, target string, body string) (int, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return s.do(t, req)
}

func (s *testServer) addMember(t *testing.T, leaderboardID string, name string, rankName string, filename string, contentType string, avatar []byte) (int, envelope) {
	t.Helper()

	fields := map[string]string{
		"leaderboardId": leaderboardID,
		"name":          name,
		"rankName":      rankName,
	}
	req := helpers.NewMemberFormRequest(t, "/api/v1/members", fields, &helpers.Avatar{
		Filename:    filename,
		ContentType: contentType,
		Content:     avatar,
	})
	return s.do(t, req)
}

func decodeResult[T any](t *testing.T, body envelope) T {
	t.Helper()

	var result T
	require.NoError(t, json.Unmarshal(body.Result, &result))
	return result
}

type leaderboardResult struct {
	ID          string `json:"id"`
	MemberCount int64  `json:"memberCount"`
	Ranks       []struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Order int    `json:"order"`
	} `json:"ranks"`
}

type memberResult struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	RankName   string `json:"rankName"`
	AvatarPath string `json:"avatarPath"`
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries)
}

func TestLeaderboardLifecycle(t *testing.T) {
	server := setupTestServer(t)

	// Create.
	status, body := server.json(t, http.MethodPost, "/api/v1/leaderboards",
		`{"name":"S1","ranks":[{"name":"Gold","color":"#FFD700","order":0},{"name":"Silver","color":"#C0C0C0","order":1}]}`)
	require.Equal(t, http.StatusCreated, status, body.Error)
	created := decodeResult[leaderboardResult](t, body)
	require.Len(t, created.Ranks, 2)
	assert.Equal(t, "Gold", created.Ranks[0].Name)
	assert.Equal(t, "Silver", created.Ranks[1].Name)

	status, body = server.json(t, http.MethodGet, "/api/v1/leaderboards", "")
	require.Equal(t, http.StatusOK, status)
	list := decodeResult[[]leaderboardResult](t, body)
	require.Len(t, list, 1)
	assert.Equal(t, int64(0), list[0].MemberCount)

	// Add Alice under Gold.
	status, body = server.addMember(t, created.ID, "Alice", "Gold", "alice.jpg", "image/jpeg", make([]byte, 1024))
	require.Equal(t, http.StatusCreated, status, body.Error)
	alice := decodeResult[memberResult](t, body)
	assert.True(t, strings.HasPrefix(alice.AvatarPath, storage.UploadsPrefix+"/"))
	assert.Equal(t, 1, countFiles(t, server.uploadDir))

	w := httptest.NewRecorder()
	server.router.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, alice.AvatarPath, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, w.Body.Bytes(), 1024)

	status, body = server.json(t, http.MethodGet, "/api/v1/members?leaderboardId="+created.ID, "")
	require.Equal(t, http.StatusOK, status)
	members := decodeResult[[]memberResult](t, body)
	require.Len(t, members, 1)
	assert.Equal(t, "Gold", members[0].RankName)

	// The cached listing is invalidated by the new member.
	_, body = server.json(t, http.MethodGet, "/api/v1/leaderboards", "")
	assert.Equal(t, int64(1), decodeResult[[]leaderboardResult](t, body)[0].MemberCount)

	// Move Alice to Silver.
	status, body = server.json(t, http.MethodPut, "/api/v1/members/"+alice.ID, `{"rankName":"Silver"}`)
	require.Equal(t, http.StatusOK, status, body.Error)

	_, body = server.json(t, http.MethodGet, "/api/v1/members?leaderboardId="+created.ID, "")
	members = decodeResult[[]memberResult](t, body)
	require.Len(t, members, 1)
	assert.Equal(t, "Silver", members[0].RankName)

	// Cascade delete.
	status, _ = server.json(t, http.MethodDelete, "/api/v1/leaderboards/"+created.ID, "")
	require.Equal(t, http.StatusOK, status)

	status, body = server.json(t, http.MethodGet, "/api/v1/members?leaderboardId="+created.ID, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(body.Result))

	status, _ = server.json(t, http.MethodGet, "/api/v1/leaderboards/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, status)

	assert.Equal(t, 0, countFiles(t, server.uploadDir))
}

func TestRenamingATierMovesItsMembers(t *testing.T) {
	server := setupTestServer(t)

	_, body := server.json(t, http.MethodPost, "/api/v1/leaderboards",
		`{"name":"Games","ranks":[{"name":"Gold","color":"#FFD700"},{"name":"Silver","color":"#C0C0C0"}]}`)
	created := decodeResult[leaderboardResult](t, body)

	status, body := server.addMember(t, created.ID, "Alice", "Gold", "alice.png", "image/png", []byte("png"))
	require.Equal(t, http.StatusCreated, status, body.Error)

	update := fmt.Sprintf(`{"ranks":[{"id":%q,"name":"Platinum","color":"#E5E4E2"},{"id":%q,"name":"Silver","color":"#C0C0C0"}]}`,
		created.Ranks[0].ID, created.Ranks[1].ID)
	status, body = server.json(t, http.MethodPut, "/api/v1/leaderboards/"+created.ID, update)
	require.Equal(t, http.StatusOK, status, body.Error)

	updated := decodeResult[leaderboardResult](t, body)
	assert.Equal(t, created.Ranks[0].ID, updated.Ranks[0].ID)
	assert.Equal(t, "Platinum", updated.Ranks[0].Name)

	_, body = server.json(t, http.MethodGet, "/api/v1/members?leaderboardId="+created.ID, "")
	members := decodeResult[[]memberResult](t, body)
	require.Len(t, members, 1)
	assert.Equal(t, "Platinum", members[0].RankName)
}

func TestRejectedAvatarsCreateNoMember(t *testing.T) {
	server := setupTestServer(t)

	_, body := server.json(t, http.MethodPost, "/api/v1/leaderboards",
		`{"name":"Games","ranks":[{"name":"Gold","color":"#FFD700"}]}`)
	created := decodeResult[leaderboardResult](t, body)

	tests := []struct {
		name        string
		filename    string
		contentType string
		size        int
	}{
		{name: "too large", filename: "big.jpg", contentType: "image/jpeg", size: 6 << 20},
		{name: "text file", filename: "notes.txt", contentType: "text/plain", size: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := server.addMember(t, created.ID, "Alice", "Gold", tt.filename, tt.contentType, make([]byte, tt.size))

			assert.Equal(t, http.StatusBadRequest, status)
			assert.NotEmpty(t, body.Error)

			var count int64
			require.NoError(t, server.db.Model(&models.Member{}).Count(&count).Error)
			assert.Zero(t, count)
			assert.Zero(t, countFiles(t, server.uploadDir))
		})
	}
}

func TestBatchReorderEndToEnd(t *testing.T) {
	server := setupTestServer(t)

	_, body := server.json(t, http.MethodPost, "/api/v1/leaderboards",
		`{"name":"Games","ranks":[{"name":"Gold","color":"#FFD700"},{"name":"Silver","color":"#C0C0C0"}]}`)
	created := decodeResult[leaderboardResult](t, body)

	_, body = server.addMember(t, created.ID, "Alice", "Gold", "alice.png", "image/png", []byte("a"))
	alice := decodeResult[memberResult](t, body)
	_, body = server.addMember(t, created.ID, "Bob", "Gold", "bob.png", "image/png", []byte("b"))
	bob := decodeResult[memberResult](t, body)

	batch := fmt.Sprintf(`{"updates":[{"id":%q,"rankName":"Silver","order":0},{"id":"ghost","rankName":"Silver","order":1},{"id":%q,"rankName":"Silver","order":2}]}`,
		alice.ID, bob.ID)
	status, body := server.json(t, http.MethodPut, "/api/v1/members/batch/reorder", batch)
	require.Equal(t, http.StatusOK, status, body.Error)

	results := decodeResult[[]*memberResult](t, body)
	require.Len(t, results, 3)
	assert.Equal(t, alice.ID, results[0].ID)
	assert.Nil(t, results[1])
	assert.Equal(t, bob.ID, results[2].ID)

	_, body = server.json(t, http.MethodGet, "/api/v1/members?leaderboardId="+created.ID, "")
	members := decodeResult[[]memberResult](t, body)
	require.Len(t, members, 2)
	for _, member := range members {
		assert.Equal(t, "Silver", member.RankName)
	}
}

func TestUnknownRoutesAndIDs(t *testing.T) {
	server := setupTestServer(t)

	status, _ := server.json(t, http.MethodPut, "/api/v1/members/missing", `{"order":1}`)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = server.json(t, http.MethodDelete, "/api/v1/members/missing", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = server.addMember(t, "missing", "Alice", "Gold", "alice.png", "image/png", []byte("a"))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Zero(t, countFiles(t, server.uploadDir))

	_, err := os.Stat(filepath.Join(server.uploadDir, "missing"))
	assert.True(t, os.IsNotExist(err))
}

func TestMalformedIDs(t *testing.T) {
	server := setupTestServer(t)

	status, _ := server.json(t, http.MethodGet, "/api/v1/leaderboards/nope", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = server.json(t, http.MethodPut, "/api/v1/leaderboards/nope", `{"name":"Renamed"}`)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = server.json(t, http.MethodDelete, "/api/v1/leaderboards/nope", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, body := server.json(t, http.MethodGet, "/api/v1/members?leaderboardId=nope", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(body.Result))
}
