package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/leadforge/leadscout/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS leads (
	id               TEXT PRIMARY KEY,
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
	rating           REAL,
	reviews          INTEGER,
	verified         INTEGER NOT NULL DEFAULT 0,
	social_active    INTEGER NOT NULL DEFAULT 0,
	response_rate    REAL,
	last_activity    DATETIME,
	created_at       DATETIME NOT NULL DEFAULT (datetime('now')),
	score            REAL NOT NULL DEFAULT 0,
	score_features   TEXT,
	scored_at        DATETIME
);

CREATE TABLE IF NOT EXISTS blacklist (
	identifier TEXT PRIMARY KEY,
	reason     TEXT,
	added_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_leads_email ON leads(email);
CREATE INDEX IF NOT EXISTS idx_leads_phone ON leads(phone);
CREATE INDEX IF NOT EXISTS idx_leads_niche ON leads(niche);
CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at);
CREATE INDEX IF NOT EXISTS idx_leads_score ON leads(score);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const leadColumns = `id, email, phone, first_name, last_name, company, role, niche,
	source, url, location, website, social_media_url, description, rating, reviews,
	verified, social_active, response_rate, last_activity, created_at,
	score, score_features, scored_at`

func (s *SQLiteStore) InsertLead(ctx context.Context, lead model.Lead) (*model.Lead, error) {
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}
	if lead.CreatedAt == nil {
		now := time.Now().UTC()
		lead.CreatedAt = &now
	}

	var featuresJSON any
	if lead.ScoreFeatures != nil {
		data, err := json.Marshal(lead.ScoreFeatures)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: marshal score features")
		}
		featuresJSON = string(data)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO leads (`+leadColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		lead.ID, nullStr(lead.Email), nullStr(lead.Phone),
		nullStr(lead.FirstName), nullStr(lead.LastName),
		nullStr(lead.Company), nullStr(lead.Role), nullStr(lead.Niche),
		nullStr(lead.Source), nullStr(lead.URL), nullStr(lead.Location),
		nullStr(lead.Website), nullStr(lead.SocialMediaURL), nullStr(lead.Description),
		lead.Rating, lead.Reviews, lead.Verified, lead.SocialMediaActive,
		lead.ResponseRate, lead.LastActivity, lead.CreatedAt,
		lead.Score, featuresJSON, lead.ScoredAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert lead")
	}
	return &lead, nil
}

func (s *SQLiteStore) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE id = ?`, id)
	lead, err := scanLead(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get lead")
	}
	return lead, nil
}

func (s *SQLiteStore) FindByContact(ctx context.Context, email, phone string) (*model.Lead, error) {
	if email != "" {
		row := s.db.QueryRowContext(ctx,
			`SELECT `+leadColumns+` FROM leads WHERE email = ? LIMIT 1`, email)
		lead, err := scanLead(row)
		if err == nil {
			return lead, nil
		}
		if err != sql.ErrNoRows {
			return nil, eris.Wrap(err, "sqlite: find by email")
		}
	}
	if phone != "" {
		row := s.db.QueryRowContext(ctx,
			`SELECT `+leadColumns+` FROM leads WHERE phone = ? LIMIT 1`, phone)
		lead, err := scanLead(row)
		if err == nil {
			return lead, nil
		}
		if err != sql.ErrNoRows {
			return nil, eris.Wrap(err, "sqlite: find by phone")
		}
	}
	return nil, nil
}

func (s *SQLiteStore) ListLeads(ctx context.Context, filter LeadFilter) ([]model.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE 1=1`
	var args []any

	if filter.Niche != "" {
		query += ` AND niche = ?`
		args = append(args, filter.Niche)
	}
	if !filter.Since.IsZero() {
		query += ` AND created_at >= ?`
		args = append(args, filter.Since.UTC())
	}
	if filter.MinScore > 0 {
		query += ` AND score >= ?`
		args = append(args, filter.MinScore)
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
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list leads")
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan lead")
		}
		leads = append(leads, *lead)
	}
	return leads, eris.Wrap(rows.Err(), "sqlite: list leads iterate")
}

func (s *SQLiteStore) SaveScore(ctx context.Context, leadID string, score float64, features map[string]float64, at time.Time) error {
	featuresJSON, err := json.Marshal(features)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal features")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE leads SET score = ?, score_features = ?, scored_at = ? WHERE id = ?`,
		score, string(featuresJSON), at.UTC(), leadID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: save score %s", leadID)
	}
	return checkRowsAffected(res, "lead", leadID)
}

func (s *SQLiteStore) AddToBlacklist(ctx context.Context, identifier, reason string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO blacklist (identifier, reason) VALUES (?, ?)
		 ON CONFLICT(identifier) DO UPDATE SET reason = excluded.reason`,
		identifier, reason,
	)
	return eris.Wrap(err, "sqlite: add to blacklist")
}

func (s *SQLiteStore) IsBlacklisted(ctx context.Context, identifier string) (bool, error) {
	if identifier == "" {
		return false, nil
	}
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM blacklist WHERE identifier = ?`, identifier,
	).Scan(&n)
	if err != nil {
		return false, eris.Wrap(err, "sqlite: check blacklist")
	}
	return n > 0, nil
}

// helpers

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("%s not found: %s", entity, id)
	}
	return nil
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

type scannable interface {
	Scan(dest ...any) error
}

func scanLead(row scannable) (*model.Lead, error) {
	var l model.Lead
	var (
		email, phone, firstName, lastName       sql.NullString
		company, role, niche, source            sql.NullString
		url, location, website, social, desc    sql.NullString
		rating, responseRate                    sql.NullFloat64
		reviews                                 sql.NullInt64
		verified, socialActive                  bool
		lastActivity, createdAt, scoredAt       sql.NullTime
		featuresJSON                            sql.NullString
	)

	err := row.Scan(
		&l.ID, &email, &phone, &firstName, &lastName, &company, &role, &niche,
		&source, &url, &location, &website, &social, &desc, &rating, &reviews,
		&verified, &socialActive, &responseRate, &lastActivity, &createdAt,
		&l.Score, &featuresJSON, &scoredAt,
	)
	if err != nil {
		return nil, err
	}

	l.Email = email.String
	l.Phone = phone.String
	l.FirstName = firstName.String
	l.LastName = lastName.String
	l.Company = company.String
	l.Role = role.String
	l.Niche = niche.String
	l.Source = source.String
	l.URL = url.String
	l.Location = location.String
	l.Website = website.String
	l.SocialMediaURL = social.String
	l.Description = desc.String
	l.Verified = verified
	l.SocialMediaActive = socialActive

	if rating.Valid {
		v := rating.Float64
		l.Rating = &v
	}
	if reviews.Valid {
		v := int(reviews.Int64)
		l.Reviews = &v
	}
	if responseRate.Valid {
		v := responseRate.Float64
		l.ResponseRate = &v
	}
	if lastActivity.Valid {
		v := lastActivity.Time
		l.LastActivity = &v
	}
	if createdAt.Valid {
		v := createdAt.Time
		l.CreatedAt = &v
	}
	if scoredAt.Valid {
		v := scoredAt.Time
		l.ScoredAt = &v
	}
	if featuresJSON.Valid && featuresJSON.String != "" {
		if err := json.Unmarshal([]byte(featuresJSON.String), &l.ScoreFeatures); err != nil {
			return nil, eris.Wrap(err, "unmarshal score features")
		}
	}
	return &l, nil
}
