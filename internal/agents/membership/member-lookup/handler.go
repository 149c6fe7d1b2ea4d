// Package memberlookup resolves academy talent ids to member records.
package memberlookup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"academy-assistant/internal/common/database"
	"academy-assistant/internal/common/logger"
	"academy-assistant/internal/common/metrics"
	"academy-assistant/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	memberQuery = `
		SELECT talent_id, kind, name, age, COALESCE(position, ''), COALESCE(specialty, ''),
		       years_experience, level, COALESCE(previous_club, '')
		FROM academy_members
		WHERE talent_id = $1
	`
)

var (
	ErrMemberLookupFailed = errors.New("MEMBER_LOOKUP_FAILED")
	ErrInvalidTalentID    = errors.New("INVALID_TALENT_ID")
)

type Handler struct {
	config      *Config
	db          *sql.DB
	redisClient *redis.Client
	logger      logger.Logger
}

// NewHandler builds a lookup handler. db and redisClient are optional.
func NewHandler(config *Config, db *sql.DB, redisClient *redis.Client, log logger.Logger) *Handler {
	if config == nil {
		config = &Config{UseSeed: true}
	}
	return &Handler{
		config:      config,
		db:          db,
		redisClient: redisClient,
		logger:      logger.ForComponent(log, "member-lookup"),
	}
}

// NormalizeTalentID upper-cases and trims an id as typed by a user.
func NormalizeTalentID(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	out, err := h.execute(ctx, input)
	switch {
	case err != nil:
		metrics.RecordMemberLookup("error")
	case out.Found:
		metrics.RecordMemberLookup(out.Source)
	default:
		metrics.RecordMemberLookup("not_found")
	}
	return out, err
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	id := NormalizeTalentID(input.TalentID)
	if id == "" {
		return nil, fmt.Errorf("%w: empty talent id", ErrInvalidTalentID)
	}
	if _, ok := models.KindForTalentID(id); !ok {
		h.logger.Info("talent id has unknown prefix", map[string]interface{}{"talentId": id})
		return &Output{Found: false}, nil
	}

	if h.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.Timeout)
		defer cancel()
	}

	if member := h.getFromCache(ctx, id); member != nil {
		return &Output{Found: true, Member: member, Source: "cache"}, nil
	}

	if h.db != nil {
		member, err := h.queryDatabase(ctx, id)
		if err != nil {
			h.logger.Error("member query failed", map[string]interface{}{"talentId": id, "error": err})
			return nil, fmt.Errorf("%w: %v", ErrMemberLookupFailed, err)
		}
		if member != nil {
			h.setCache(ctx, id, member)
			return &Output{Found: true, Member: member, Source: "database"}, nil
		}
	}

	if h.config.UseSeed {
		if member, ok := seedLookup(id); ok {
			h.setCache(ctx, id, member)
			return &Output{Found: true, Member: member, Source: "seed"}, nil
		}
	}

	h.logger.Info("talent id not found", map[string]interface{}{"talentId": id})
	return &Output{Found: false}, nil
}

func (h *Handler) getFromCache(ctx context.Context, id string) *models.Member {
	if h.redisClient == nil {
		return nil
	}
	var member models.Member
	err := h.cacheKeys().GetJSON(ctx, h.redisClient, id, &member)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			h.logger.Warn("member cache read failed", map[string]interface{}{"talentId": id, "error": err})
		}
		return nil
	}
	return &member
}

func (h *Handler) cacheKeys() database.Namespace {
	return database.MemberKeys.WithTTL(h.config.CacheTTL)
}

func (h *Handler) setCache(ctx context.Context, id string, member *models.Member) {
	if h.redisClient == nil {
		return
	}
	if err := h.cacheKeys().SetJSON(ctx, h.redisClient, id, member); err != nil {
		h.logger.Warn("member cache write failed", map[string]interface{}{"talentId": id, "error": err})
	}
}

func (h *Handler) queryDatabase(ctx context.Context, id string) (*models.Member, error) {
	var (
		m    models.Member
		kind string
	)
	err := h.db.QueryRowContext(ctx, memberQuery, id).Scan(
		&m.TalentID, &kind, &m.Name, &m.Age, &m.Position, &m.Specialty,
		&m.YearsExperience, &m.Level, &m.PreviousClub,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	m.Kind = models.MemberKind(kind)
	if m.Kind != models.MemberKindPlayer && m.Kind != models.MemberKindCoach {
		m.Kind, _ = models.KindForTalentID(m.TalentID)
	}
	return &m, nil
}
