package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/wachplan-dev/wachplan/backend/internal/config"
	"github.com/wachplan-dev/wachplan/backend/internal/domain"
	"github.com/wachplan-dev/wachplan/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// authentication
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// the public wall display needs no login
	h.Mux.Get("/display/{stationID}", h.GetDisplay)

	// everything below requires a logged-in user
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Delete("/", h.DeleteMyAccount)
		})

		// onboarding: pick a station or found a new one
		r.Route("/stations", func(r chi.Router) {
			r.Get("/", h.GetAllStations)
			r.With(h.myInfo).Post("/", h.CreateStation)
		})
		r.With(h.myInfo).Post("/join-requests", h.CreateJoinRequest)

		// everything below requires a station membership
		r.Group(func(r chi.Router) {
			r.Use(h.membership)

			r.Route("/station", func(r chi.Router) {
				r.Get("/", h.GetMyStation)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateStation)
			})

			r.Route("/station/join-requests", func(r chi.Router) {
				r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
				r.Get("/", h.GetPendingJoinRequests)
				r.Route("/{id}", func(r chi.Router) {
					r.Use(h.joinRequestInfo)
					r.Post("/accept", h.AcceptJoinRequest)
					r.Post("/reject", h.RejectJoinRequest)
				})
			})

			r.Route("/members", func(r chi.Router) {
				r.Get("/", h.GetStationMembers)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.InviteUser)
				r.Route("/{id}", func(r chi.Router) {
					r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
					r.Use(h.memberInfo)
					r.Patch("/", h.UpdateMemberRole)
					r.Delete("/", h.RemoveMember)
				})
			})

			r.Route("/divisions", func(r chi.Router) {
				r.Get("/", h.GetDivisions)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateDivision)
				r.Route("/{id}", func(r chi.Router) {
					r.Use(h.divisionInfo)
					r.Get("/", h.GetDivision)
					r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateDivision)
					r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteDivision)
				})
			})

			r.Route("/people", func(r chi.Router) {
				r.Get("/", h.GetPeople)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleEditor})).Post("/", h.CreatePerson)
				r.Route("/{id}", func(r chi.Router) {
					r.Use(h.personInfo)
					r.Get("/", h.GetPerson)
					r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleEditor})).Patch("/", h.UpdatePerson)
					r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeletePerson)
				})
			})

			r.Route("/vehicles", func(r chi.Router) {
				r.Get("/", h.GetVehicles)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateVehicle)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/order", h.UpdateVehicleOrder)
				r.Route("/{id}", func(r chi.Router) {
					r.Use(h.vehicleInfo)
					r.Get("/", h.GetVehicle)
					r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateVehicle)
					r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteVehicle)
				})
			})

			r.Route("/shift-templates", func(r chi.Router) {
				r.Get("/", h.GetShiftTemplates)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateShiftTemplate)
				r.Route("/{id}", func(r chi.Router) {
					r.Use(h.shiftTemplateInfo)
					r.Get("/", h.GetShiftTemplate)
					r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateShiftTemplate)
					r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteShiftTemplate)
				})
			})

			r.Route("/schedule-cycle", func(r chi.Router) {
				r.Get("/", h.GetScheduleCycle)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Put("/", h.UpsertScheduleCycle)
			})

			// shifts themselves are admin territory; editors only fill crews
			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", h.GetShifts)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateShift)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/generate", h.GenerateShifts)
				r.Route("/{id}", func(r chi.Router) {
					r.Use(h.shiftInfo)
					r.Get("/", h.GetShift)
					r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateShift)
					r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteShift)
					r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/duplicate", h.DuplicateShift)
					r.Route("/assignments", func(r chi.Router) {
						r.Get("/", h.GetAssignments)
						r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleEditor})).Put("/", h.UpsertAssignment)
						r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleEditor})).Delete("/{assignmentID}", h.DeleteAssignment)
					})
				})
			})
		})
	})
}
