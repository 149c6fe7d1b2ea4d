package memberlookup

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"academy-assistant/internal/common/config"
	"academy-assistant/internal/common/logger"
	"academy-assistant/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig() *Config {
	return &Config{Timeout: 2 * time.Second, CacheTTL: 5 * time.Minute, UseSeed: true}
}

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func memberColumns() []string {
	return []string{"talent_id", "kind", "name", "age", "position", "specialty", "years_experience", "level", "previous_club"}
}

func TestExecute_SeedDirectory(t *testing.T) {
	tests := []struct {
		input    string
		found    bool
		name     string
		kind     models.MemberKind
		userType models.UserType
	}{
		{input: "P001", found: true, name: "Marcus Johnson", kind: models.MemberKindPlayer, userType: models.UserTypeExistingPlayer},
		{input: "  p003 ", found: true, name: "Ahmed Al-Rashid", kind: models.MemberKindPlayer, userType: models.UserTypeExistingPlayer},
		{input: "c003", found: true, name: "David Chen", kind: models.MemberKindCoach, userType: models.UserTypeExistingCoach},
		{input: "P999"},
		{input: "X001"},
		{input: "hello"},
	}

	h := NewHandler(createTestConfig(), nil, nil, logger.NewTestLogger(t))
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			out, err := h.Execute(context.Background(), &Input{TalentID: tt.input})
			require.NoError(t, err)
			assert.Equal(t, tt.found, out.Found)
			if !tt.found {
				assert.Nil(t, out.Member)
				return
			}
			assert.Equal(t, "seed", out.Source)
			assert.Equal(t, tt.name, out.Member.Name)
			assert.Equal(t, tt.kind, out.Member.Kind)
			assert.Equal(t, tt.userType, out.Member.UserType())
		})
	}
}

func TestExecute_EmptyID(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil)
	_, err := h.Execute(context.Background(), &Input{TalentID: "   "})
	assert.ErrorIs(t, err, ErrInvalidTalentID)
}

func TestExecute_SeedResultIsCached(t *testing.T) {
	mr, rdb := setupRedis(t)
	h := NewHandler(createTestConfig(), nil, rdb, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{TalentID: "C001"})
	require.NoError(t, err)
	require.True(t, out.Found)

	raw, err := mr.Get("members:C001")
	require.NoError(t, err)
	var cached models.Member
	require.NoError(t, json.Unmarshal([]byte(raw), &cached))
	assert.Equal(t, "James Mitchell", cached.Name)
	assert.Equal(t, 5*time.Minute, mr.TTL("members:C001"))
}

func TestExecute_CacheHit(t *testing.T) {
	mr, rdb := setupRedis(t)
	data, _ := json.Marshal(models.Member{TalentID: "P777", Kind: models.MemberKindPlayer, Name: "Cached Player", Age: 19})
	require.NoError(t, mr.Set("members:P777", string(data)))

	db, mock := setupMockDB(t)
	h := NewHandler(createTestConfig(), db, rdb, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{TalentID: "p777"})
	require.NoError(t, err)
	assert.True(t, out.Found)
	assert.Equal(t, "cache", out.Source)
	assert.Equal(t, "Cached Player", out.Member.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_CorruptCacheFallsThrough(t *testing.T) {
	mr, rdb := setupRedis(t)
	require.NoError(t, mr.Set("members:P002", "{not json"))

	h := NewHandler(createTestConfig(), nil, rdb, logger.NewTestLogger(t))
	out, err := h.Execute(context.Background(), &Input{TalentID: "P002"})
	require.NoError(t, err)
	assert.Equal(t, "seed", out.Source)
	assert.Equal(t, "Sofia Martinez", out.Member.Name)
}

func TestExecute_Database(t *testing.T) {
	mr, rdb := setupRedis(t)
	db, mock := setupMockDB(t)

	mock.ExpectQuery("FROM academy_members WHERE talent_id").
		WithArgs("P900").
		WillReturnRows(sqlmock.NewRows(memberColumns()).
			AddRow("P900", "player", "Kofi Mensah", 18, "RW", "", 3, "Intermediate", "Accra Youth"))

	h := NewHandler(createTestConfig(), db, rdb, logger.NewTestLogger(t))
	out, err := h.Execute(context.Background(), &Input{TalentID: "p900"})
	require.NoError(t, err)

	assert.True(t, out.Found)
	assert.Equal(t, "database", out.Source)
	assert.Equal(t, "Kofi Mensah", out.Member.Name)
	assert.Equal(t, models.MemberKindPlayer, out.Member.Kind)
	assert.True(t, mr.Exists("members:P900"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_DatabaseMissFallsBackToSeed(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("FROM academy_members WHERE talent_id").
		WithArgs("C002").
		WillReturnError(sql.ErrNoRows)

	h := NewHandler(createTestConfig(), db, nil, logger.NewTestLogger(t))
	out, err := h.Execute(context.Background(), &Input{TalentID: "C002"})
	require.NoError(t, err)
	assert.Equal(t, "seed", out.Source)
	assert.Equal(t, "Maria Santos", out.Member.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_DatabaseKindDerivedFromPrefix(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("FROM academy_members WHERE talent_id").
		WithArgs("C450").
		WillReturnRows(sqlmock.NewRows(memberColumns()).
			AddRow("C450", "", "Ada Obi", 44, "", "Set Pieces", 15, "Head Coach", ""))

	h := NewHandler(createTestConfig(), db, nil, logger.NewTestLogger(t))
	out, err := h.Execute(context.Background(), &Input{TalentID: "C450"})
	require.NoError(t, err)
	assert.Equal(t, models.MemberKindCoach, out.Member.Kind)
}

func TestExecute_DatabaseError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("FROM academy_members WHERE talent_id").
		WithArgs("P001").
		WillReturnError(errors.New("connection reset"))

	h := NewHandler(createTestConfig(), db, nil, logger.NewTestLogger(t))
	_, err := h.Execute(context.Background(), &Input{TalentID: "P001"})
	assert.ErrorIs(t, err, ErrMemberLookupFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_CacheErrorsAreNotFatal(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("members:P004").SetErr(errors.New("redis down"))

	h := NewHandler(createTestConfig(), nil, rdb, logger.NewTestLogger(t))
	out, err := h.Execute(context.Background(), &Input{TalentID: "P004"})
	require.NoError(t, err)
	assert.Equal(t, "Elena Kowalski", out.Member.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadConfig(t *testing.T) {
	cfg := LoadConfig(config.MembersConfig{CacheTTL: 30})
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.True(t, cfg.UseSeed)

	assert.Equal(t, 10*time.Minute, LoadConfig(config.MembersConfig{}).CacheTTL)
}
