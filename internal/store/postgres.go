package store

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/leadforge/leadscout/internal/model"
)

// Pool is the subset of pgxpool.Pool used by PostgresStore. It is satisfied
// by both *pgxpool.Pool and pgxmock's pool interface.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS leads (
	id               TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	email            TEXT,
	phone            TEXT,
	first_name       TEXT,
	last_name        TEXT,
	company          TEXT,
	role             TEXT,
	niche            TEXT,
	source           TEXT,
	url              TEXT,
	location         TEXT,
	website          TEXT,
	social_media_url TEXT,
	description      TEXT,
	rating           DOUBLE PRECISION,
	reviews          INTEGER,
	verified         BOOLEAN NOT NULL DEFAULT false,
	social_active    BOOLEAN NOT NULL DEFAULT false,
	response_rate    DOUBLE PRECISION,
	last_activity    TIMESTAMPTZ,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	score            DOUBLE PRECISION NOT NULL DEFAULT 0,
	score_features   JSONB,
	scored_at        TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS blacklist (
	identifier TEXT PRIMARY KEY,
	reason     TEXT,
	added_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_leads_email ON leads(email);
CREATE INDEX IF NOT EXISTS idx_leads_phone ON leads(phone);
CREATE INDEX IF NOT EXISTS idx_leads_niche ON leads(niche);
CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_leads_score ON leads(score DESC);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) InsertLead(ctx context.Context, lead model.Lead) (*model.Lead, error) {
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}
	if lead.CreatedAt == nil {
		now := time.Now().UTC()
		lead.CreatedAt = &now
	}

	var featuresJSON []byte
	if lead.ScoreFeatures != nil {
		data, err := json.Marshal(lead.ScoreFeatures)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: marshal score features")
		}
		featuresJSON = data
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO leads (id, email, phone, first_name, last_name, company, role, niche,
			source, url, location, website, social_media_url, description, rating, reviews,
			verified, social_active, response_rate, last_activity, created_at,
			score, score_features, scored_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24)`,
		lead.ID, textOrNil(lead.Email), textOrNil(lead.Phone),
		textOrNil(lead.FirstName), textOrNil(lead.LastName),
		textOrNil(lead.Company), textOrNil(lead.Role), textOrNil(lead.Niche),
		textOrNil(lead.Source), textOrNil(lead.URL), textOrNil(lead.Location),
		textOrNil(lead.Website), textOrNil(lead.SocialMediaURL), textOrNil(lead.Description),
		lead.Rating, lead.Reviews, lead.Verified, lead.SocialMediaActive,
		lead.ResponseRate, lead.LastActivity, lead.CreatedAt,
		lead.Score, featuresJSON, lead.ScoredAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert lead")
	}
	return &lead, nil
}

const pgLeadColumns = `id, email, phone, first_name, last_name, company, role, niche,
	source, url, location, website, social_media_url, description, rating, reviews,
	verified, social_active, response_rate, last_activity, created_at,
	score, score_features, scored_at`

func (s *PostgresStore) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+pgLeadColumns+` FROM leads WHERE id = $1`, id)
	lead, err := scanPgLead(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get lead")
	}
	return lead, nil
}

func (s *PostgresStore) FindByContact(ctx context.Context, email, phone string) (*model.Lead, error) {
	if email != "" {
		row := s.pool.QueryRow(ctx,
			`SELECT `+pgLeadColumns+` FROM leads WHERE email = $1 LIMIT 1`, email)
		lead, err := scanPgLead(row)
		if err == nil {
			return lead, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, eris.Wrap(err, "postgres: find by email")
		}
	}
	if phone != "" {
		row := s.pool.QueryRow(ctx,
			`SELECT `+pgLeadColumns+` FROM leads WHERE phone = $1 LIMIT 1`, phone)
		lead, err := scanPgLead(row)
		if err == nil {
			return lead, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, eris.Wrap(err, "postgres: find by phone")
		}
	}
	return nil, nil
}

func (s *PostgresStore) ListLeads(ctx context.Context, filter LeadFilter) ([]model.Lead, error) {
	query := `SELECT ` + pgLeadColumns + ` FROM leads WHERE true`
	var args []any

	if filter.Niche != "" {
		args = append(args, filter.Niche)
		query += ` AND niche = $` + strconv.Itoa(len(args))
	}
	if !filter.Since.IsZero() {
		args = append(args, filter.Since.UTC())
		query += ` AND created_at >= $` + strconv.Itoa(len(args))
	}
	if filter.MinScore > 0 {
		args = append(args, filter.MinScore)
		query += ` AND score >= $` + strconv.Itoa(len(args))
	}
	if filter.Unscored {
		query += ` AND scored_at IS NULL`
	}

	switch filter.OrderBy {
	case OrderByScore:
		query += ` ORDER BY score DESC, created_at DESC`
	default:
		query += ` ORDER BY created_at DESC`
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += ` LIMIT $` + strconv.Itoa(len(args))

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list leads")
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		lead, err := scanPgLead(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan lead")
		}
		leads = append(leads, *lead)
	}
	return leads, eris.Wrap(rows.Err(), "postgres: list leads iterate")
}

func (s *PostgresStore) SaveScore(ctx context.Context, leadID string, score float64, features map[string]float64, at time.Time) error {
	featuresJSON, err := json.Marshal(features)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal features")
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE leads SET score = $1, score_features = $2, scored_at = $3 WHERE id = $4`,
		score, featuresJSON, at.UTC(), leadID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: save score %s", leadID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("lead not found: %s", leadID)
	}
	return nil
}

func (s *PostgresStore) AddToBlacklist(ctx context.Context, identifier, reason string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO blacklist (identifier, reason) VALUES ($1, $2)
		 ON CONFLICT (identifier) DO UPDATE SET reason = EXCLUDED.reason`,
		identifier, reason,
	)
	return eris.Wrap(err, "postgres: add to blacklist")
}

func (s *PostgresStore) IsBlacklisted(ctx context.Context, identifier string) (bool, error) {
	if identifier == "" {
		return false, nil
	}
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(1) FROM blacklist WHERE identifier = $1`, identifier,
	).Scan(&n)
	if err != nil {
		return false, eris.Wrap(err, "postgres: check blacklist")
	}
	return n > 0, nil
}

// helpers

func textOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func scanPgLead(row pgx.Row) (*model.Lead, error) {
	var l model.Lead
	var (
		email, phone, firstName, lastName    *string
		company, role, niche, source         *string
		url, location, website, social, desc *string
		lastActivity, createdAt, scoredAt    *time.Time
		featuresJSON                         []byte
	)

	err := row.Scan(
		&l.ID, &email, &phone, &firstName, &lastName, &company, &role, &niche,
		&source, &url, &location, &website, &social, &desc, &l.Rating, &l.Reviews,
		&l.Verified, &l.SocialMediaActive, &l.ResponseRate, &lastActivity, &createdAt,
		&l.Score, &featuresJSON, &scoredAt,
	)
	if err != nil {
		return nil, err
	}

	l.Email = deref(email)
	l.Phone = deref(phone)
	l.FirstName = deref(firstName)
	l.LastName = deref(lastName)
	l.Company = deref(company)
	l.Role = deref(role)
	l.Niche = deref(niche)
	l.Source = deref(source)
	l.URL = deref(url)
	l.Location = deref(location)
	l.Website = deref(website)
	l.SocialMediaURL = deref(social)
	l.Description = deref(desc)
	l.LastActivity = lastActivity
	l.CreatedAt = createdAt
	l.ScoredAt = scoredAt

	if len(featuresJSON) > 0 {
		if err := json.Unmarshal(featuresJSON, &l.ScoreFeatures); err != nil {
			return nil, eris.Wrap(err, "unmarshal score features")
		}
	}
	return &l, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
