package migrations

import "gorm.io/gorm"

func GetCoreMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2025_01_02_000000_create_tournaments_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS tournaments (
						id SERIAL PRIMARY KEY,
						name VARCHAR(140) NOT NULL,
						slug VARCHAR(140) UNIQUE NOT NULL,
						description TEXT,
						opening_date TIMESTAMP NULL,
						closing_date TIMESTAMP NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
					);
					CREATE INDEX IF NOT EXISTS idx_tournaments_slug ON tournaments(slug);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS tournaments CASCADE").Error
			},
		},
		{
			Name: "2025_01_02_000001_create_tournament_rounds_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS tournament_rounds (
						id SERIAL PRIMARY KEY,
						tournament_id INTEGER NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
						round_num INTEGER NOT NULL,
						opening_time TIMESTAMP NULL,
						closing_time TIMESTAMP NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						CONSTRAINT idx_rounds_tournament_num UNIQUE (tournament_id, round_num)
					);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS tournament_rounds CASCADE").Error
			},
		},
		{
			Name: "2025_01_02_000002_create_user_profiles_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS user_profiles (
						id SERIAL PRIMARY KEY,
						user_id INTEGER UNIQUE NOT NULL REFERENCES users(id) ON DELETE CASCADE,
						tournament_id INTEGER NULL REFERENCES tournaments(id) ON DELETE SET NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
					);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS user_profiles CASCADE").Error
			},
		},
		{
			Name: "2025_01_02_000003_create_identities_tables",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS team_identities (
						id SERIAL PRIMARY KEY,
						name VARCHAR(140) NOT NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
					);
					CREATE TABLE IF NOT EXISTS person_identities (
						id SERIAL PRIMARY KEY,
						name VARCHAR(140) NOT NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
					);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec(`
					DROP TABLE IF EXISTS person_identities CASCADE;
					DROP TABLE IF EXISTS team_identities CASCADE;
				`).Error
			},
		},
		{
			Name: "2025_01_02_000004_create_teams_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS teams (
						id SERIAL PRIMARY KEY,
						tournament_id INTEGER NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
						name VARCHAR(140) NOT NULL,
						description TEXT,
						origin VARCHAR(140),
						slug VARCHAR(140) NULL,
						identity_id INTEGER NULL REFERENCES team_identities(id) ON DELETE SET NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						CONSTRAINT idx_teams_tournament_slug UNIQUE (tournament_id, slug),
						CONSTRAINT idx_teams_tournament_identity UNIQUE (tournament_id, identity_id)
					);
					CREATE INDEX IF NOT EXISTS idx_teams_tournament_id ON teams(tournament_id);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS teams CASCADE").Error
			},
		},
		{
			Name: "2025_01_02_000005_create_people_tables",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS participants (
						id SERIAL PRIMARY KEY,
						tournament_id INTEGER NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
						team_id INTEGER NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
						short_name VARCHAR(140) NOT NULL,
						full_name VARCHAR(140),
						origin VARCHAR(140),
						grade VARCHAR(20),
						is_captain BOOLEAN NOT NULL DEFAULT false,
						identity_id INTEGER NULL REFERENCES person_identities(id) ON DELETE SET NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						CONSTRAINT idx_participants_tournament_identity UNIQUE (tournament_id, identity_id)
					);
					CREATE INDEX IF NOT EXISTS idx_participants_team_id ON participants(team_id);
					CREATE TABLE IF NOT EXISTS leaders (
						id SERIAL PRIMARY KEY,
						tournament_id INTEGER NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
						team_id INTEGER NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
						short_name VARCHAR(140) NOT NULL,
						full_name VARCHAR(140),
						origin VARCHAR(140),
						identity_id INTEGER NULL REFERENCES person_identities(id) ON DELETE SET NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						CONSTRAINT idx_leaders_tournament_identity UNIQUE (tournament_id, identity_id)
					);
					CREATE INDEX IF NOT EXISTS idx_leaders_team_id ON leaders(team_id);
					CREATE TABLE IF NOT EXISTS jurors (
						id SERIAL PRIMARY KEY,
						tournament_id INTEGER NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
						short_name VARCHAR(140) NOT NULL,
						full_name VARCHAR(140),
						origin VARCHAR(140),
						identity_id INTEGER NULL REFERENCES person_identities(id) ON DELETE SET NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						CONSTRAINT idx_jurors_tournament_identity UNIQUE (tournament_id, identity_id)
					);
					CREATE INDEX IF NOT EXISTS idx_jurors_tournament_id ON jurors(tournament_id);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec(`
					DROP TABLE IF EXISTS jurors CASCADE;
					DROP TABLE IF EXISTS leaders CASCADE;
					DROP TABLE IF EXISTS participants CASCADE;
				`).Error
			},
		},
		{
			Name: "2025_01_02_000006_create_rooms_and_problems_tables",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS rooms (
						id SERIAL PRIMARY KEY,
						tournament_id INTEGER NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
						name VARCHAR(140) NOT NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
					);
					CREATE INDEX IF NOT EXISTS idx_rooms_tournament_id ON rooms(tournament_id);
					CREATE TABLE IF NOT EXISTS problems (
						id SERIAL PRIMARY KEY,
						tournament_id INTEGER NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
						problem_num INTEGER NOT NULL,
						name VARCHAR(140) NOT NULL,
						description TEXT,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						CONSTRAINT idx_problems_tournament_num UNIQUE (tournament_id, problem_num)
					);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec(`
					DROP TABLE IF EXISTS problems CASCADE;
					DROP TABLE IF EXISTS rooms CASCADE;
				`).Error
			},
		},
		{
			Name: "2025_01_02_000007_create_fights_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS fights (
						id SERIAL PRIMARY KEY,
						tournament_id INTEGER NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
						round_id INTEGER NOT NULL REFERENCES tournament_rounds(id) ON DELETE CASCADE,
						room_id INTEGER NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
						status VARCHAR(20) NOT NULL DEFAULT 'not_started',
						start_time TIMESTAMP NULL,
						stop_time TIMESTAMP NULL,
						team1_id INTEGER NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
						team2_id INTEGER NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
						team3_id INTEGER NULL REFERENCES teams(id) ON DELETE CASCADE,
						team4_id INTEGER NULL REFERENCES teams(id) ON DELETE CASCADE,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						CONSTRAINT idx_fights_room_round UNIQUE (round_id, room_id)
					);
					CREATE INDEX IF NOT EXISTS idx_fights_tournament_id ON fights(tournament_id);
					CREATE TABLE IF NOT EXISTS fight_jury (
						fight_id INTEGER NOT NULL REFERENCES fights(id) ON DELETE CASCADE,
						juror_id INTEGER NOT NULL REFERENCES jurors(id) ON DELETE CASCADE,
						PRIMARY KEY (fight_id, juror_id)
					);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec(`
					DROP TABLE IF EXISTS fight_jury CASCADE;
					DROP TABLE IF EXISTS fights CASCADE;
				`).Error
			},
		},
		{
			Name: "2025_01_02_000008_create_fight_stages_tables",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS fight_stages (
						id SERIAL PRIMARY KEY,
						fight_id INTEGER NOT NULL REFERENCES fights(id) ON DELETE CASCADE,
						action_num INTEGER NOT NULL,
						problem_id INTEGER NOT NULL REFERENCES problems(id) ON DELETE CASCADE,
						reporter_id INTEGER NOT NULL REFERENCES participants(id) ON DELETE CASCADE,
						opponent_id INTEGER NOT NULL REFERENCES participants(id) ON DELETE CASCADE,
						reviewer_id INTEGER NULL REFERENCES participants(id) ON DELETE SET NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						CONSTRAINT idx_stages_fight_action UNIQUE (fight_id, action_num)
					);
					CREATE TABLE IF NOT EXISTS refusals (
						id SERIAL PRIMARY KEY,
						fight_stage_id INTEGER NOT NULL REFERENCES fight_stages(id) ON DELETE CASCADE,
						problem_id INTEGER NOT NULL REFERENCES problems(id) ON DELETE CASCADE,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						CONSTRAINT idx_refusals_stage_problem UNIQUE (fight_stage_id, problem_id)
					);
					CREATE TABLE IF NOT EXISTS juror_points (
						id SERIAL PRIMARY KEY,
						fight_stage_id INTEGER NOT NULL REFERENCES fight_stages(id) ON DELETE CASCADE,
						juror_id INTEGER NOT NULL REFERENCES jurors(id) ON DELETE CASCADE,
						reporter_mark INTEGER NOT NULL,
						opponent_mark INTEGER NOT NULL,
						reviewer_mark INTEGER NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						CONSTRAINT idx_points_stage_juror UNIQUE (fight_stage_id, juror_id)
					);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec(`
					DROP TABLE IF EXISTS juror_points CASCADE;
					DROP TABLE IF EXISTS refusals CASCADE;
					DROP TABLE IF EXISTS fight_stages CASCADE;
				`).Error
			},
		},
	}
}
