package routes

import (
	"net/http"

	"backend/controllers"
	"backend/middlewares"
	"backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps carries everything the router needs; main wires it once at startup.
type Deps struct {
	DB *gorm.DB

	Auth      *controllers.AuthController
	Profile   *controllers.ProfileController
	Targets   *controllers.TargetsController
	Intake    *controllers.IntakeController
	Activity  *controllers.ActivityController
	Summary   *controllers.SummaryController
	Insights  *controllers.InsightsController
	Coach     *controllers.CoachController
	MealPlan  *controllers.MealPlanController
	Vision    *controllers.VisionController
	SavedFood *controllers.SavedFoodController
	Realtime  *controllers.RealtimeController
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", d.Auth.Register)
		auth.POST("/login", d.Auth.Login)
		auth.POST("/logout", d.Auth.Logout)
		auth.GET("/status", middlewares.OptionalAuth(d.DB), d.Auth.Status)
	}

	me := r.Group("/me")
	me.Use(middlewares.AuthMiddleware(d.DB))
	{
		me.GET("/profile", d.Profile.GetProfile)
		me.PUT("/profile", d.Profile.UpdateProfile)
		me.GET("/targets", d.Targets.GetTargets)

		me.GET("/intake", d.Intake.List)
		me.POST("/intake", d.Intake.Create)
		me.PUT("/intake/:id", d.Intake.Update)
		me.DELETE("/intake/:id", d.Intake.Delete)
		me.GET("/intake/calendar", d.Intake.Calendar)
		me.GET("/intake/frequent", d.Intake.Frequent)

		me.GET("/activity", d.Activity.Get)
		me.POST("/activity", d.Activity.Upsert)

		me.GET("/summary", d.Summary.Monthly)
		me.GET("/insights", d.Insights.GetInsights)
		me.POST("/coach", d.Coach.Coach)

		me.POST("/plan_meal", d.MealPlan.PlanMeal)
		me.POST("/analyze_recipe", d.MealPlan.AnalyzeRecipe)
		me.POST("/analyze_food_image", d.Vision.AnalyzeFoodImage)

		me.GET("/saved_foods", d.SavedFood.List)
		me.POST("/saved_foods", d.SavedFood.Create)
		me.DELETE("/saved_foods/:id", d.SavedFood.Delete)
		me.POST("/saved_foods/:id/log", d.SavedFood.Log)

		me.GET("/ws", d.Realtime.Connect)
	}

	return r
}

// BuildDeps constructs the service and controller graph on top of a database
// handle. Split from SetupRouter so tests can build the graph against sqlite.
func BuildDeps(db *gorm.DB) Deps {
	hub := services.NewRealtimeHub()
	llm := services.NewOpenRouterClient()

	authSvc := services.NewAuthService(db)
	profileSvc := services.NewProfileService(db)
	intakeSvc := services.NewIntakeService(db)
	activitySvc := services.NewActivityService(db)
	savedFoodSvc := services.NewSavedFoodService(db, intakeSvc)
	insightsSvc := services.NewInsightsService(db)
	sessionSvc := services.NewSessionService(db)
	coachSvc := services.NewCoachService(insightsSvc, llm, sessionSvc)
	mealPlanSvc := services.NewMealPlanService(profileSvc, llm, sessionSvc)
	visionSvc := services.NewVisionService(llm)

	return Deps{
		DB:        db,
		Auth:      controllers.NewAuthController(authSvc),
		Profile:   controllers.NewProfileController(profileSvc),
		Targets:   controllers.NewTargetsController(profileSvc),
		Intake:    controllers.NewIntakeController(intakeSvc, hub),
		Activity:  controllers.NewActivityController(activitySvc, profileSvc, hub),
		Summary:   controllers.NewSummaryController(intakeSvc, activitySvc),
		Insights:  controllers.NewInsightsController(insightsSvc),
		Coach:     controllers.NewCoachController(coachSvc),
		MealPlan:  controllers.NewMealPlanController(mealPlanSvc),
		Vision:    controllers.NewVisionController(visionSvc),
		SavedFood: controllers.NewSavedFoodController(savedFoodSvc, intakeSvc, hub),
		Realtime:  controllers.NewRealtimeController(hub),
	}
}
