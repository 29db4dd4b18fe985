package main

import (
	"log"

	"Debt_BBS/internal/config"
	"Debt_BBS/internal/model"
	"Debt_BBS/internal/pkg"
	"Debt_BBS/internal/repository/mysql"
	"Debt_BBS/internal/repository/redis"
	"Debt_BBS/internal/router"
	"Debt_BBS/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	pkg.SetJWTSecrets(cfg.JWTAccessSecret, cfg.JWTRefreshSecret)

	if err := mysql.InitDB(cfg.MySQLDSN); err != nil {
		panic(err)
	}

	// 连接redis
	if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		panic(err)
	}
	defer redis.Close()

	// 自动建表（开发阶段 OK）
	mysql.DB.AutoMigrate(
		&model.Thread{},
		&model.Post{},
		&model.Persona{},
		&model.BannedIP{},
		&model.Admin{},
	)

	// 种入默认 persona 目录和初始 superadmin
	personaRepo := &mysql.PersonaRepository{}
	if err := personaRepo.EnsureDefaults(); err != nil {
		panic(err)
	}
	adminSvc := service.NewAdminService()
	if err := adminSvc.Bootstrap(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		panic(err)
	}

	// kafka 审计事件可选，没配 broker 就不发
	var producer *pkg.KafkaProducer
	if len(cfg.KafkaBrokers) > 0 {
		p, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		if err != nil {
			log.Printf("kafka producer 初始化失败，审计事件关闭: %v", err)
		} else {
			producer = p
			defer producer.Close()
		}
	}

	boardSvc := service.NewBoardService(cfg.SecretKey)
	modSvc := service.NewModerationService(producer)

	// Gin
	r := router.InitRouter(boardSvc, adminSvc, modSvc)
	if err := r.Run(cfg.ListenAddr); err != nil {
		return
	}
}
