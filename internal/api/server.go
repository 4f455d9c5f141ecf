package api

import (
	"log"

	"github.com/SundayYogurt/intern_service/config"
	"github.com/SundayYogurt/intern_service/infra/queue"
	"github.com/SundayYogurt/intern_service/internal/api/rest/handlers"
	"github.com/SundayYogurt/intern_service/internal/domain"
	"github.com/SundayYogurt/intern_service/internal/helper"
	"github.com/SundayYogurt/intern_service/internal/repository"
	"github.com/SundayYogurt/intern_service/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	// ---------- MIGRATION + SEED (guarded by advisory lock) ----------
	if err := migrateAndSeed(db); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)

	authHelper := helper.SetupAuth(cfg.AccessSecret)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	divisionRepo := repository.NewDivisionRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	userRoleRepo := repository.NewUserRoleRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	archiveRepo := repository.NewArchiveRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// ---------- Services ----------
	accountSvc := services.NewAccountService(userRepo, userRoleRepo, divisionRepo, authHelper)
	importSvc := services.NewImportService(userRepo, divisionRepo, roleRepo, auditRepo, kafkaProducer)
	approvalSvc := services.NewApprovalService(submissionRepo, archiveRepo, divisionRepo, importSvc)

	// ---------- Handler ----------
	admissionHandler := handlers.NewAdmissionHandler(accountSvc, importSvc, approvalSvc, authHelper)
	admissionHandler.SetupRoutes(app)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}

// migrateAndSeed ทำ migrate + seed ใต้ pg advisory lock กัน replica ชนกันตอน boot
// ต้องรันทั้งหมดบน connection เดียว (advisory lock ผูกกับ session) และปลดก่อน return
func migrateAndSeed(db *gorm.DB) error {
	// ใช้เลขคงที่ตัวเดียวกันทั้งระบบเพื่อ lock งาน migrate
	const migrateLockID int64 = 20260830

	return db.Connection(func(conn *gorm.DB) error {
		if err := conn.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
			return err
		}
		defer func() {
			_ = conn.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
		}()

		if err := conn.AutoMigrate(
			&domain.User{},
			&domain.Role{},
			&domain.UserRole{},
			&domain.Division{},
			&domain.InternProfile{},
			&domain.Form{},
			&domain.FormField{},
			&domain.FormSubmission{},
			&domain.AdmissionArchive{},
			&domain.AuditLog{},
		); err != nil {
			return err
		}

		seedRoles(conn)
		return nil
	})
}

func seedRoles(db *gorm.DB) {
	codes := []string{domain.RoleAdmin, domain.RoleMentor, domain.RoleIntern}

	for _, code := range codes {
		var r domain.Role
		err := db.Where("code = ?", code).First(&r).Error
		if err == gorm.ErrRecordNotFound {
			_ = db.Create(&domain.Role{
				Code: code,
				Name: code,
			}).Error
		}
	}
}
