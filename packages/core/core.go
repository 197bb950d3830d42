package core

import (
	"log"

	"core/cron"
	"core/handlers"
	"core/scoping"
	"core/services"

	authMiddleware "auth/middleware"
	authModels "auth/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Module struct {
	TournamentHandler *handlers.TournamentHandler
	TeamHandler       *handlers.TeamHandler
	PersonHandler     *handlers.PersonHandler
	FacilityHandler   *handlers.FacilityHandler
	FightHandler      *handlers.FightHandler
	IdentityHandler   *handlers.IdentityHandler
	ProfileHandler    *handlers.ProfileHandler
	PublicHandler     *handlers.PublicHandler
	AutoCloseService  *services.AutoCloseService
	Scheduler         *cron.Scheduler
	Registry          *scoping.Registry
	db                *gorm.DB
}

func NewModule(db *gorm.DB) *Module {
	registry := scoping.NewRegistry()

	autoCloseService := services.NewAutoCloseService(db)
	scheduler := cron.NewScheduler(autoCloseService)

	return &Module{
		TournamentHandler: handlers.NewTournamentHandler(db, registry),
		TeamHandler:       handlers.NewTeamHandler(db, registry),
		PersonHandler:     handlers.NewPersonHandler(db, registry),
		FacilityHandler:   handlers.NewFacilityHandler(db, registry),
		FightHandler:      handlers.NewFightHandler(db, registry),
		IdentityHandler:   handlers.NewIdentityHandler(db),
		ProfileHandler:    handlers.NewProfileHandler(db),
		PublicHandler:     handlers.NewPublicHandler(db),
		AutoCloseService:  autoCloseService,
		Scheduler:         scheduler,
		Registry:          registry,
		db:                db,
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	// Staff surface: JWT first, then the caller resolution the services
	// depend on. Identity and profile management is superuser-only.
	admin := r.Group("/admin", authMiddleware.JWTMiddleware(), scoping.Middleware(m.db))
	{
		admin.POST("/tournaments", m.TournamentHandler.CreateTournament)
		admin.GET("/tournaments", m.TournamentHandler.ListTournaments)
		admin.GET("/tournaments/:id", m.TournamentHandler.GetTournament)
		admin.PUT("/tournaments/:id", m.TournamentHandler.UpdateTournament)
		admin.DELETE("/tournaments/:id", m.TournamentHandler.DeleteTournament)

		admin.POST("/rounds", m.TournamentHandler.CreateRound)
		admin.GET("/rounds", m.TournamentHandler.ListRounds)
		admin.GET("/rounds/:id", m.TournamentHandler.GetRound)
		admin.PUT("/rounds/:id", m.TournamentHandler.UpdateRound)
		admin.DELETE("/rounds/:id", m.TournamentHandler.DeleteRound)

		admin.POST("/teams", m.TeamHandler.CreateTeam)
		admin.GET("/teams", m.TeamHandler.ListTeams)
		admin.GET("/teams/:id", m.TeamHandler.GetTeam)
		admin.PUT("/teams/:id", m.TeamHandler.UpdateTeam)
		admin.DELETE("/teams/:id", m.TeamHandler.DeleteTeam)
		admin.POST("/teams/:id/participants", m.TeamHandler.AddTeamParticipant)
		admin.POST("/teams/:id/leaders", m.TeamHandler.AddTeamLeader)

		admin.POST("/participants", m.PersonHandler.CreateParticipant)
		admin.GET("/participants", m.PersonHandler.ListParticipants)
		admin.GET("/participants/:id", m.PersonHandler.GetParticipant)
		admin.PUT("/participants/:id", m.PersonHandler.UpdateParticipant)
		admin.DELETE("/participants/:id", m.PersonHandler.DeleteParticipant)

		admin.POST("/leaders", m.PersonHandler.CreateLeader)
		admin.GET("/leaders", m.PersonHandler.ListLeaders)
		admin.GET("/leaders/:id", m.PersonHandler.GetLeader)
		admin.PUT("/leaders/:id", m.PersonHandler.UpdateLeader)
		admin.DELETE("/leaders/:id", m.PersonHandler.DeleteLeader)

		admin.POST("/jurors", m.PersonHandler.CreateJuror)
		admin.GET("/jurors", m.PersonHandler.ListJurors)
		admin.GET("/jurors/:id", m.PersonHandler.GetJuror)
		admin.PUT("/jurors/:id", m.PersonHandler.UpdateJuror)
		admin.DELETE("/jurors/:id", m.PersonHandler.DeleteJuror)

		admin.POST("/rooms", m.FacilityHandler.CreateRoom)
		admin.GET("/rooms", m.FacilityHandler.ListRooms)
		admin.GET("/rooms/:id", m.FacilityHandler.GetRoom)
		admin.PUT("/rooms/:id", m.FacilityHandler.UpdateRoom)
		admin.DELETE("/rooms/:id", m.FacilityHandler.DeleteRoom)

		admin.POST("/problems", m.FacilityHandler.CreateProblem)
		admin.GET("/problems", m.FacilityHandler.ListProblems)
		admin.GET("/problems/:id", m.FacilityHandler.GetProblem)
		admin.PUT("/problems/:id", m.FacilityHandler.UpdateProblem)
		admin.DELETE("/problems/:id", m.FacilityHandler.DeleteProblem)

		admin.POST("/fights", m.FightHandler.CreateFight)
		admin.GET("/fights", m.FightHandler.ListFights)
		admin.GET("/fights/:id", m.FightHandler.GetFight)
		admin.GET("/fights/:id/refs", m.FightHandler.GetFightRefs)
		admin.GET("/fights/:id/stages", m.FightHandler.ListFightStages)
		admin.PUT("/fights/:id", m.FightHandler.UpdateFight)
		admin.DELETE("/fights/:id", m.FightHandler.DeleteFight)

		admin.POST("/stages", m.FightHandler.CreateStage)
		admin.GET("/stages/:id", m.FightHandler.GetStage)
		admin.GET("/stages/:id/refusals", m.FightHandler.ListStageRefusals)
		admin.GET("/stages/:id/juror-points", m.FightHandler.ListStageJurorPoints)
		admin.PUT("/stages/:id", m.FightHandler.UpdateStage)
		admin.DELETE("/stages/:id", m.FightHandler.DeleteStage)

		admin.POST("/refusals", m.FightHandler.CreateRefusal)
		admin.DELETE("/refusals/:id", m.FightHandler.DeleteRefusal)

		admin.POST("/juror-points", m.FightHandler.CreateJurorPoints)
		admin.GET("/juror-points/:id", m.FightHandler.GetJurorPoints)
		admin.PUT("/juror-points/:id", m.FightHandler.UpdateJurorPoints)
		admin.DELETE("/juror-points/:id", m.FightHandler.DeleteJurorPoints)

		superuser := admin.Group("", authMiddleware.RequireRole(m.db, authModels.RoleAdmin))
		{
			superuser.POST("/team-identities", m.IdentityHandler.CreateTeamIdentity)
			superuser.GET("/team-identities", m.IdentityHandler.ListTeamIdentities)
			superuser.GET("/team-identities/:id", m.IdentityHandler.GetTeamIdentity)
			superuser.PUT("/team-identities/:id", m.IdentityHandler.UpdateTeamIdentity)
			superuser.DELETE("/team-identities/:id", m.IdentityHandler.DeleteTeamIdentity)

			superuser.POST("/person-identities", m.IdentityHandler.CreatePersonIdentity)
			superuser.GET("/person-identities", m.IdentityHandler.ListPersonIdentities)
			superuser.GET("/person-identities/:id", m.IdentityHandler.GetPersonIdentity)
			superuser.PUT("/person-identities/:id", m.IdentityHandler.UpdatePersonIdentity)
			superuser.DELETE("/person-identities/:id", m.IdentityHandler.DeletePersonIdentity)

			superuser.POST("/profiles", m.ProfileHandler.AssignProfile)
			superuser.GET("/profiles", m.ProfileHandler.ListProfiles)
			superuser.DELETE("/profiles/:user_id", m.ProfileHandler.DeleteProfile)
		}

		// Staff may look up their own profile; the service enforces that.
		admin.GET("/profiles/:user_id", m.ProfileHandler.GetProfile)
	}

	// Public read-only site
	public := r.Group("/t/:tournament_slug")
	{
		public.GET("", m.PublicHandler.GetTournament)
		public.GET("/schedule", m.PublicHandler.GetSchedule)
		public.GET("/fights/:id", m.PublicHandler.GetFight)
		public.GET("/teams", m.PublicHandler.ListTeams)
		public.GET("/teams/:id", m.PublicHandler.GetTeam)
		public.GET("/participants", m.PublicHandler.ListParticipants)
		public.GET("/leaders", m.PublicHandler.ListLeaders)
		public.GET("/jury", m.PublicHandler.ListJury)
		public.GET("/rooms", m.PublicHandler.ListRooms)
		public.GET("/problems", m.PublicHandler.ListProblems)
	}
}

// StartScheduler starts the cron scheduler for the auto-close job
func (m *Module) StartScheduler() error {
	log.Println("Starting core module scheduler...")
	return m.Scheduler.Start()
}

// StopScheduler stops the cron scheduler
func (m *Module) StopScheduler() {
	log.Println("Stopping core module scheduler...")
	m.Scheduler.Stop()
}

// RunAutoCloseNow manually triggers the auto-close job (useful for testing)
func (m *Module) RunAutoCloseNow() {
	log.Println("Manually triggering auto-close...")
	m.Scheduler.RunNow()
}
