package fixtures

import (
	"fmt"
	"log"
	"time"

	authModels "auth/models"
	authUtils "auth/utils"
	"core/models"

	"gorm.io/gorm"
)

type Fixtures struct {
	db *gorm.DB
}

func NewFixtures(db *gorm.DB) *Fixtures {
	return &Fixtures{db: db}
}

// GenerateDemoTournament seeds a complete demo tournament: staff accounts,
// rounds, rooms, problems, four teams with members, a jury and a first
// round of fights with marked stages.
func (f *Fixtures) GenerateDemoTournament() error {
	log.Println("Starting fixtures generation...")

	admin, staff, err := f.generateUsers()
	if err != nil {
		return fmt.Errorf("failed to generate users: %w", err)
	}
	_ = admin

	tournament, rounds, err := f.generateTournament()
	if err != nil {
		return fmt.Errorf("failed to generate tournament: %w", err)
	}

	if err := f.pinStaff(staff, tournament); err != nil {
		return fmt.Errorf("failed to pin staff profile: %w", err)
	}

	rooms, problems, err := f.generateFacilities(tournament)
	if err != nil {
		return fmt.Errorf("failed to generate facilities: %w", err)
	}

	teams, err := f.generateTeams(tournament)
	if err != nil {
		return fmt.Errorf("failed to generate teams: %w", err)
	}

	jurors, err := f.generateJurors(tournament)
	if err != nil {
		return fmt.Errorf("failed to generate jurors: %w", err)
	}

	if err := f.generateFights(tournament, rounds, rooms, teams, jurors, problems); err != nil {
		return fmt.Errorf("failed to generate fights: %w", err)
	}

	log.Println("Fixtures generation completed")
	return nil
}

func (f *Fixtures) generateUsers() (*authModels.User, *authModels.User, error) {
	adminPassword, err := authUtils.HashPassword("admin1234")
	if err != nil {
		return nil, nil, err
	}
	admin := &authModels.User{
		Email:    "admin@scifight.local",
		Username: "admin",
		Password: adminPassword,
		Enabled:  true,
		Roles:    authModels.Roles{authModels.RoleStaff, authModels.RoleAdmin},
	}
	if err := f.db.Create(admin).Error; err != nil {
		return nil, nil, err
	}

	staffPassword, err := authUtils.HashPassword("staff1234")
	if err != nil {
		return nil, nil, err
	}
	staff := &authModels.User{
		Email:    "organizer@scifight.local",
		Username: "organizer",
		Password: staffPassword,
		Enabled:  true,
		Roles:    authModels.GetDefaultRoles(),
	}
	if err := f.db.Create(staff).Error; err != nil {
		return nil, nil, err
	}

	log.Printf("Created users: %s, %s", admin.Email, staff.Email)
	return admin, staff, nil
}

func (f *Fixtures) generateTournament() (*models.Tournament, []models.TournamentRound, error) {
	opening := time.Now().AddDate(0, 0, -1)
	closing := time.Now().AddDate(0, 0, 3)

	tournament := &models.Tournament{
		Name:        "Demo Science Fight 2025",
		Slug:        "demo-2025",
		Description: "Seeded demo edition",
		OpeningDate: &opening,
		ClosingDate: &closing,
	}
	if err := f.db.Create(tournament).Error; err != nil {
		return nil, nil, err
	}

	rounds := make([]models.TournamentRound, 0, 3)
	for i := 1; i <= 3; i++ {
		start := opening.Add(time.Duration(i-1) * 24 * time.Hour)
		end := start.Add(4 * time.Hour)
		round := models.TournamentRound{
			TournamentID: tournament.ID,
			RoundNum:     i,
			OpeningTime:  &start,
			ClosingTime:  &end,
		}
		if err := f.db.Create(&round).Error; err != nil {
			return nil, nil, err
		}
		rounds = append(rounds, round)
	}

	log.Printf("Created tournament %q with %d rounds", tournament.Name, len(rounds))
	return tournament, rounds, nil
}

func (f *Fixtures) pinStaff(staff *authModels.User, tournament *models.Tournament) error {
	profile := &models.UserProfile{
		UserID:       staff.ID,
		TournamentID: &tournament.ID,
	}
	return f.db.Create(profile).Error
}

func (f *Fixtures) generateFacilities(tournament *models.Tournament) ([]models.Room, []models.Problem, error) {
	roomNames := []string{"Room A", "Room B"}
	rooms := make([]models.Room, 0, len(roomNames))
	for _, name := range roomNames {
		room := models.Room{TournamentID: tournament.ID, Name: name}
		if err := f.db.Create(&room).Error; err != nil {
			return nil, nil, err
		}
		rooms = append(rooms, room)
	}

	problemNames := []string{
		"Invent Yourself", "Jumping Chain", "Sound of Silence",
		"Magnetic Pendulum", "Candle in the Wind",
	}
	problems := make([]models.Problem, 0, len(problemNames))
	for i, name := range problemNames {
		problem := models.Problem{
			TournamentID: tournament.ID,
			ProblemNum:   i + 1,
			Name:         name,
		}
		if err := f.db.Create(&problem).Error; err != nil {
			return nil, nil, err
		}
		problems = append(problems, problem)
	}

	log.Printf("Created %d rooms and %d problems", len(rooms), len(problems))
	return rooms, problems, nil
}

func (f *Fixtures) generateTeams(tournament *models.Tournament) ([]models.Team, error) {
	teamDefs := []struct {
		name   string
		slug   string
		origin string
	}{
		{"Quantum Quokkas", "quokkas", "North Lyceum"},
		{"Singular Points", "singular", "East Gymnasium"},
		{"Entropy Eagles", "eagles", "South School"},
		{"Phase Shifters", "shifters", "West College"},
	}

	teams := make([]models.Team, 0, len(teamDefs))
	for i, def := range teamDefs {
		slug := def.slug
		team := models.Team{
			TournamentID: tournament.ID,
			Name:         def.name,
			Origin:       def.origin,
			Slug:         &slug,
		}
		if err := f.db.Create(&team).Error; err != nil {
			return nil, err
		}

		for j := 1; j <= 3; j++ {
			participant := models.Participant{
				TournamentID: tournament.ID,
				TeamID:       team.ID,
				ShortName:    fmt.Sprintf("P%d %s", j, def.name),
				FullName:     fmt.Sprintf("Participant %d of %s", j, def.name),
				Origin:       def.origin,
				Grade:        "11",
				IsCaptain:    j == 1,
			}
			if err := f.db.Create(&participant).Error; err != nil {
				return nil, err
			}
		}

		leader := models.Leader{
			TournamentID: tournament.ID,
			TeamID:       team.ID,
			ShortName:    fmt.Sprintf("Leader %d", i+1),
			FullName:     fmt.Sprintf("Team leader of %s", def.name),
			Origin:       def.origin,
		}
		if err := f.db.Create(&leader).Error; err != nil {
			return nil, err
		}

		teams = append(teams, team)
	}

	log.Printf("Created %d teams with members", len(teams))
	return teams, nil
}

func (f *Fixtures) generateJurors(tournament *models.Tournament) ([]models.Juror, error) {
	jurorNames := []string{"Dr. Ampere", "Dr. Bohr", "Dr. Curie", "Dr. Dirac", "Dr. Euler"}
	jurors := make([]models.Juror, 0, len(jurorNames))
	for _, name := range jurorNames {
		juror := models.Juror{
			TournamentID: tournament.ID,
			ShortName:    name,
			FullName:     name + " (invited)",
		}
		if err := f.db.Create(&juror).Error; err != nil {
			return nil, err
		}
		jurors = append(jurors, juror)
	}

	log.Printf("Created %d jurors", len(jurors))
	return jurors, nil
}

func (f *Fixtures) generateFights(
	tournament *models.Tournament,
	rounds []models.TournamentRound,
	rooms []models.Room,
	teams []models.Team,
	jurors []models.Juror,
	problems []models.Problem,
) error {
	if len(rounds) == 0 || len(rooms) < 2 || len(teams) < 4 || len(jurors) < 4 {
		return fmt.Errorf("not enough seeded records to build fights")
	}

	firstRound := rounds[0]
	start := firstRound.OpeningTime

	// Two three-team fights in the first round, one per room.
	pairs := [][3]int{{0, 1, 2}, {3, 0, 1}}
	for i, pair := range pairs {
		team3 := teams[pair[2]].ID
		fight := models.Fight{
			TournamentID: tournament.ID,
			RoundID:      firstRound.ID,
			RoomID:       rooms[i].ID,
			Status:       models.FightInProgress,
			StartTime:    start,
			Team1ID:      teams[pair[0]].ID,
			Team2ID:      teams[pair[1]].ID,
			Team3ID:      &team3,
		}
		if err := f.db.Create(&fight).Error; err != nil {
			return err
		}

		jury := []models.Juror{jurors[i], jurors[i+1], jurors[i+2]}
		if err := f.db.Model(&fight).Association("Jury").Replace(jury); err != nil {
			return err
		}

		if err := f.generateStage(&fight, jury, problems, pair); err != nil {
			return err
		}
	}

	log.Printf("Created %d fights in round %d", len(pairs), firstRound.RoundNum)
	return nil
}

func (f *Fixtures) generateStage(fight *models.Fight, jury []models.Juror, problems []models.Problem, pair [3]int) error {
	var reporter, opponent, reviewer models.Participant
	if err := f.db.Where("team_id = ?", fight.Team1ID).First(&reporter).Error; err != nil {
		return err
	}
	if err := f.db.Where("team_id = ?", fight.Team2ID).First(&opponent).Error; err != nil {
		return err
	}
	if err := f.db.Where("team_id = ?", *fight.Team3ID).First(&reviewer).Error; err != nil {
		return err
	}

	stage := models.FightStage{
		FightID:    fight.ID,
		ActionNum:  1,
		ProblemID:  problems[pair[0]].ID,
		ReporterID: reporter.ID,
		OpponentID: opponent.ID,
		ReviewerID: &reviewer.ID,
	}
	if err := f.db.Create(&stage).Error; err != nil {
		return err
	}

	refusal := models.Refusal{
		FightStageID: stage.ID,
		ProblemID:    problems[pair[1]].ID,
	}
	if err := f.db.Create(&refusal).Error; err != nil {
		return err
	}

	for i, juror := range jury {
		reviewerMark := 6 + i%3
		points := models.JurorPoints{
			FightStageID: stage.ID,
			JurorID:      juror.ID,
			ReporterMark: 7 + i%3,
			OpponentMark: 6 + (i+1)%3,
			ReviewerMark: &reviewerMark,
		}
		if err := f.db.Create(&points).Error; err != nil {
			return err
		}
	}

	return nil
}

// ClearAllData wipes every seeded table, children first.
func (f *Fixtures) ClearAllData() error {
	log.Println("Clearing all fixture data...")

	tables := []string{
		"juror_points",
		"refusals",
		"fight_stages",
		"fight_jury",
		"fights",
		"participants",
		"leaders",
		"jurors",
		"teams",
		"problems",
		"rooms",
		"user_profiles",
		"team_identities",
		"person_identities",
		"tournament_rounds",
		"tournaments",
		"refresh_tokens",
		"users",
	}

	for _, table := range tables {
		if err := f.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}

	log.Println("All fixture data cleared")
	return nil
}
